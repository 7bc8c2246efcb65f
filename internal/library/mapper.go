package library

import "strings"

// ItemInput is the caller's intent for a new item. Zero-valued fields are
// simply not set on the template.
type ItemInput struct {
	Type        string
	Title       string
	Date        string
	Authors     []string
	URL         string
	Abstract    string
	Extra       string
	Publication string
	Volume      string
	Issue       string
	Pages       string
	DOI         string
	Tags        []string
	Collection  string

	// Attachment sources, applied after the item is created. PDFURL wins
	// when both are given.
	PDFURL      string
	SnapshotURL string
	Filename    string
}

// mapFields merges caller-supplied fields into a fetched template. Title and
// date are set unconditionally. Fields that only exist on some item types are
// set only when the fetched template declares them: the template, not the
// input, decides. That check keeps the mapper correct across divergent
// per-type schemas and must be re-run for every template, never cached.
func mapFields(tpl map[string]interface{}, in ItemInput) map[string]interface{} {
	item := make(map[string]interface{}, len(tpl))
	for k, v := range tpl {
		item[k] = v
	}

	item["title"] = in.Title
	if in.Date != "" {
		item["date"] = in.Date
	}

	conditional := map[string]string{
		"url":              in.URL,
		"abstractNote":     in.Abstract,
		"extra":            in.Extra,
		"publicationTitle": in.Publication,
		"volume":           in.Volume,
		"issue":            in.Issue,
		"pages":            in.Pages,
		"DOI":              in.DOI,
	}
	for field, value := range conditional {
		if value == "" {
			continue
		}
		if _, ok := tpl[field]; ok {
			item[field] = value
		}
	}

	if len(in.Authors) > 0 {
		item["creators"] = mapCreators(in.Authors)
	}

	// An empty list is valid and means "no tags".
	tags := make([]map[string]interface{}, 0, len(in.Tags))
	for _, t := range in.Tags {
		tags = append(tags, map[string]interface{}{"tag": t})
	}
	item["tags"] = tags

	// Create-time collection assignment only; membership changes on existing
	// items go through reconciliation instead.
	if in.Collection != "" {
		item["collections"] = []string{in.Collection}
	}

	return item
}

// mapCreators splits author names on whitespace: the last token becomes the
// last name and everything before it the first name. A single token is an
// organization-style single-field name.
func mapCreators(authors []string) []map[string]interface{} {
	creators := make([]map[string]interface{}, 0, len(authors))
	for _, name := range authors {
		parts := strings.Fields(name)
		switch {
		case len(parts) >= 2:
			creators = append(creators, map[string]interface{}{
				"creatorType": "author",
				"firstName":   strings.Join(parts[:len(parts)-1], " "),
				"lastName":    parts[len(parts)-1],
			})
		case len(parts) == 1:
			creators = append(creators, map[string]interface{}{
				"creatorType": "author",
				"name":        parts[0],
			})
		}
	}
	return creators
}
