// Command mcp serves the era catalog, analysis and narration to MCP clients,
// over stdio by default or over HTTP when MCP_ADDR is set.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jwebster45206/chronicle/internal/config"
	"github.com/jwebster45206/chronicle/internal/logger"
	"github.com/jwebster45206/chronicle/internal/mcp"
	"github.com/jwebster45206/chronicle/internal/storage"
	"github.com/jwebster45206/chronicle/pkg/analysis"
	"github.com/jwebster45206/chronicle/pkg/narration"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the protocol.
	log := logger.SetupTo(cfg, os.Stderr)

	eras := storage.NewEraFiles(cfg.DataDir, log)

	seed := rand.Uint64()
	if cfg.NarrationSeed != nil {
		seed = *cfg.NarrationSeed
	}
	server, err := mcp.NewServer(eras,
		analysis.NewProcessor(analysis.DefaultConfig()),
		narration.NewBuilder(narration.NewLockedRand(seed)),
		log)
	if err != nil {
		log.Error("Failed to create MCP server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	if cfg.WatchEras {
		g.Go(func() error {
			if err := eras.WatchEras(gCtx); err != nil {
				log.Warn("Era file watcher stopped", "error", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		if cfg.MCPAddr != "" {
			err = server.RunHTTP(gCtx, cfg.MCPAddr)
		} else {
			err = server.Run(gCtx)
		}
		if err == nil {
			// The client went away; stop the watcher too.
			stop()
		}
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("MCP server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("MCP server exited")
}
