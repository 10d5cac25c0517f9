// Package mcp exposes the era catalog, analysis and narration to MCP
// clients as tools and resources.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jwebster45206/chronicle/pkg/analysis"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/narration"
)

// Version is the MCP server version.
const Version = "0.1.0"

// ErrMissingEras is returned when a server is created without an era source.
var ErrMissingEras = errors.New("era source is required")

// EraSource provides the era list. storage.EraFiles and every
// storage.Storage satisfy it.
type EraSource interface {
	ListEras(ctx context.Context) ([]era.Era, error)
	GetEra(ctx context.Context, id string) (*era.Era, error)
}

// Server is the Chronicle MCP server.
type Server struct {
	eras      EraSource
	describer era.Describer
	processor *analysis.Processor
	builder   *narration.Builder
	logger    *slog.Logger
	server    *mcp.Server
}

// NewServer registers the Chronicle tools and resources. Narrations without
// a seed draw from builder.
func NewServer(eras EraSource, processor *analysis.Processor, builder *narration.Builder, logger *slog.Logger) (*Server, error) {
	if eras == nil {
		return nil, ErrMissingEras
	}
	if processor == nil {
		processor = analysis.NewProcessor(analysis.DefaultConfig())
	}
	if builder == nil {
		builder = narration.NewBuilder(narration.NewLockedRand(rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		eras:      eras,
		describer: era.DefaultDescriber,
		processor: processor,
		builder:   builder,
		logger:    logger,
		server:    mcp.NewServer(&mcp.Implementation{Name: "chronicle", Version: Version}, nil),
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Run serves MCP over stdio until ctx is cancelled or the client leaves.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("MCP server listening", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mcp http server: %w", err)
	}
	return nil
}

// catalog indexes one era, or fails with era.ErrNotFound.
func (s *Server) catalog(ctx context.Context, eraID string) (*era.Catalog, error) {
	e, err := s.eras.GetEra(ctx, eraID)
	if err != nil {
		return nil, fmt.Errorf("loading era: %w", err)
	}
	if e == nil {
		return nil, fmt.Errorf("era %q: %w", eraID, era.ErrNotFound)
	}
	return era.NewCatalog([]era.Era{*e}, s.describer), nil
}
