package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/blackwell-systems/zotmcp/internal/library"
)

type itemView struct {
	Key      string   `json:"key"`
	Version  int      `json:"version"`
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Date     string   `json:"date,omitempty"`
	URL      string   `json:"url,omitempty"`
	Abstract string   `json:"abstract,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

func toItemView(v library.ItemView) itemView {
	return itemView{
		Key:      v.Key,
		Version:  v.Version,
		Type:     v.Type,
		Title:    v.Title,
		Date:     v.Date,
		URL:      v.URL,
		Abstract: v.Abstract,
		Tags:     v.Tags,
	}
}

type getItemInput struct {
	Key string `json:"key" jsonschema:"Item key"`
}

func (s *Server) handleGetItemTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input getItemInput) (*mcpsdk.CallToolResult, itemView, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, itemView{}, fmt.Errorf("key is required")
	}
	v, err := s.svc.GetItem(ctx, s.cfg.Library, input.Key)
	if err != nil {
		return nil, itemView{}, err
	}
	return nil, toItemView(*v), nil
}

type getFulltextInput struct {
	ItemKey string `json:"item_key" jsonschema:"Item or attachment key"`
}

type getFulltextOutput struct {
	Found         bool   `json:"found"`
	Content       string `json:"content,omitempty"`
	Note          string `json:"note,omitempty"`
	SourceKey     string `json:"source_key,omitempty"`
	IndexedExtent int    `json:"indexed_extent,omitempty"`
	TotalExtent   int    `json:"total_extent,omitempty"`
}

func (s *Server) handleGetFulltextTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input getFulltextInput) (*mcpsdk.CallToolResult, getFulltextOutput, error) {
	if strings.TrimSpace(input.ItemKey) == "" {
		return nil, getFulltextOutput{}, fmt.Errorf("item_key is required")
	}
	res, err := s.svc.Fulltext(ctx, s.cfg.Library, input.ItemKey)
	if err != nil {
		return nil, getFulltextOutput{}, err
	}
	return nil, getFulltextOutput{
		Found:         res.Found,
		Content:       res.Content,
		Note:          res.Note,
		SourceKey:     res.SourceKey,
		IndexedExtent: res.IndexedExtent,
		TotalExtent:   res.TotalExtent,
	}, nil
}

type searchLibraryInput struct {
	Query string `json:"query" jsonschema:"Search terms"`
	QMode string `json:"qmode,omitempty" jsonschema:"Search mode: titleCreatorYear (default) or everything"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results to return"`
}

type searchLibraryOutput struct {
	Items []itemView `json:"items"`
	Total int        `json:"total"`
}

func (s *Server) handleSearchLibraryTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input searchLibraryInput) (*mcpsdk.CallToolResult, searchLibraryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.SearchLimit
	}
	views, total, err := s.svc.Search(ctx, s.cfg.Library, input.Query, input.QMode, limit)
	if err != nil {
		return nil, searchLibraryOutput{}, err
	}
	out := searchLibraryOutput{Items: make([]itemView, 0, len(views)), Total: total}
	for _, v := range views {
		out.Items = append(out.Items, toItemView(v))
	}
	return nil, out, nil
}

type libraryStatsInput struct {
	TopTags int `json:"top_tags,omitempty" jsonschema:"How many tags to include"`
}

type tagUsageView struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type libraryStatsOutput struct {
	TotalItems      int            `json:"total_items"`
	CollectionCount int            `json:"collection_count"`
	Collections     []string       `json:"collections"`
	TopTags         []tagUsageView `json:"top_tags"`
	MostRecentKey   string         `json:"most_recent_key,omitempty"`
	MostRecentTitle string         `json:"most_recent_title,omitempty"`
	MostRecentDate  string         `json:"most_recent_date,omitempty"`
}

func (s *Server) handleLibraryStatsTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input libraryStatsInput) (*mcpsdk.CallToolResult, libraryStatsOutput, error) {
	topTags := input.TopTags
	if topTags <= 0 {
		topTags = s.cfg.TopTags
	}
	stats, err := s.svc.Stats(ctx, s.cfg.Library, topTags)
	if err != nil {
		return nil, libraryStatsOutput{}, err
	}
	out := libraryStatsOutput{
		TotalItems:      stats.TotalItems,
		CollectionCount: stats.CollectionCount,
		Collections:     stats.Collections,
		TopTags:         make([]tagUsageView, 0, len(stats.TopTags)),
	}
	for _, t := range stats.TopTags {
		out.TopTags = append(out.TopTags, tagUsageView{Name: t.Name, Count: t.Count})
	}
	if stats.MostRecent != nil {
		out.MostRecentKey = stats.MostRecent.Key
		out.MostRecentTitle = stats.MostRecent.Title
		out.MostRecentDate = stats.MostRecent.Date
	}
	return nil, out, nil
}

type listCollectionsInput struct{}

type collectionView struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	ParentKey string `json:"parent_key,omitempty"`
	NumItems  int    `json:"num_items"`
}

type listCollectionsOutput struct {
	Collections []collectionView `json:"collections"`
}

func (s *Server) handleListCollectionsTool(ctx context.Context, _ *mcpsdk.CallToolRequest, _ listCollectionsInput) (*mcpsdk.CallToolResult, listCollectionsOutput, error) {
	cols, err := s.svc.ListCollections(ctx, s.cfg.Library)
	if err != nil {
		return nil, listCollectionsOutput{}, err
	}
	out := listCollectionsOutput{Collections: make([]collectionView, 0, len(cols))}
	for _, c := range cols {
		out.Collections = append(out.Collections, collectionView{
			Key:       c.Key,
			Name:      c.Name,
			ParentKey: c.ParentKey,
			NumItems:  c.NumItems,
		})
	}
	return nil, out, nil
}

type listTagsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum tags to return"`
}

type listTagsOutput struct {
	Tags []tagUsageView `json:"tags"`
}

func (s *Server) handleListTagsTool(ctx context.Context, _ *mcpsdk.CallToolRequest, input listTagsInput) (*mcpsdk.CallToolResult, listTagsOutput, error) {
	tags, err := s.svc.ListTags(ctx, s.cfg.Library, input.Limit)
	if err != nil {
		return nil, listTagsOutput{}, err
	}
	out := listTagsOutput{Tags: make([]tagUsageView, 0, len(tags))}
	for _, t := range tags {
		out.Tags = append(out.Tags, tagUsageView{Name: t.Name, Count: t.Count})
	}
	return nil, out, nil
}
