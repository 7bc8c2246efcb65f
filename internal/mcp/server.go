// Package mcp exposes the library engine as an MCP tool server over
// streamable HTTP. The tool layer is deliberately thin: schema structs and
// envelope shaping only, with every decision delegated to the library
// service.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/blackwell-systems/zotmcp/internal/library"
	"github.com/blackwell-systems/zotmcp/internal/zotero"
)

const serverName = "zotmcp"

// Config controls the MCP server runtime behavior.
type Config struct {
	Listen      string
	Path        string
	BearerToken string
	Library     zotero.LibraryRef
	TopTags     int
	SearchLimit int
	Version     string
}

// Server serves the library tools over streamable HTTP.
type Server struct {
	cfg        Config
	svc        *library.Service
	logger     *zap.Logger
	httpServer *http.Server
}

// NewServer constructs the MCP facade.
func NewServer(cfg Config, svc *library.Service, logger *zap.Logger) (*Server, error) {
	if cfg.Listen == "" {
		return nil, errors.New("listen address is required")
	}
	if cfg.Library.ID == "" {
		return nil, errors.New("library id is required")
	}
	if cfg.Path == "" {
		cfg.Path = "/mcp"
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		cfg.Path = "/" + cfg.Path
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{cfg: cfg, svc: svc, logger: logger}
	s.httpServer = &http.Server{
		Addr:    cfg.Listen,
		Handler: s.buildHandler(),
	}
	return s, nil
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening",
			zap.String("addr", s.cfg.Listen),
			zap.String("path", s.cfg.Path),
			zap.String("library", string(s.cfg.Library.Kind)+"/"+s.cfg.Library.ID),
		)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("mcp server stopped")
		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) buildHandler() http.Handler {
	version := s.cfg.Version
	if version == "" {
		version = "dev"
	}
	mcpSrv := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    serverName,
		Version: version,
	}, &mcpsdk.ServerOptions{
		Instructions: serverInstructions(s.cfg),
	})
	s.registerTools(mcpSrv)

	streamable := mcpsdk.NewStreamableHTTPHandler(func(_ *http.Request) *mcpsdk.Server {
		return mcpSrv
	}, nil)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(withRequestLogging(s.logger))
	if s.cfg.BearerToken != "" {
		r.Use(requireBearer(s.cfg.BearerToken))
	}
	r.Handle(s.cfg.Path, streamable)
	return r
}

func serverInstructions(cfg Config) string {
	return fmt.Sprintf(
		"zotmcp exposes a Zotero %s library (id %s). Use save_item to create "+
			"items (optionally with a PDF or snapshot attachment), update_item "+
			"for tag/collection/field changes, attach_file for attachments on "+
			"existing items, get_fulltext for extracted text, and the read "+
			"tools (search_library, get_item, library_stats, list_collections, "+
			"create_collection, list_tags) to explore the library. Keys and "+
			"versions are assigned by Zotero; never invent them.",
		cfg.Library.Kind, cfg.Library.ID,
	)
}

func (s *Server) registerTools(srv *mcpsdk.Server) {
	desc := func(name string) string {
		d, ok := toolDescriptions[name]
		if !ok {
			panic(fmt.Sprintf("missing MCP tool description for %q", name))
		}
		return d
	}

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolSaveItem,
		Description: desc(toolSaveItem),
	}, s.handleSaveItemTool)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolUpdateItem,
		Description: desc(toolUpdateItem),
	}, s.handleUpdateItemTool)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolAttachFile,
		Description: desc(toolAttachFile),
	}, s.handleAttachFileTool)
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolCreateCollection,
		Description: desc(toolCreateCollection),
	}, s.handleCreateCollectionTool)

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetFulltext,
		Description: desc(toolGetFulltext),
	}, withToolErrors(s.handleGetFulltextTool))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetItem,
		Description: desc(toolGetItem),
	}, withToolErrors(s.handleGetItemTool))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolSearchLibrary,
		Description: desc(toolSearchLibrary),
	}, withToolErrors(s.handleSearchLibraryTool))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolLibraryStats,
		Description: desc(toolLibraryStats),
	}, withToolErrors(s.handleLibraryStatsTool))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolListCollections,
		Description: desc(toolListCollections),
	}, withToolErrors(s.handleListCollectionsTool))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolListTags,
		Description: desc(toolListTags),
	}, withToolErrors(s.handleListTagsTool))
}
