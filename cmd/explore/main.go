// Command explore browses the era catalog from the terminal without the API:
// listing eras and regions, analyzing descriptions and narrating regions.
package main

import (
	"fmt"
	"os"

	"github.com/jwebster45206/chronicle/internal/config"
	"github.com/jwebster45206/chronicle/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.SetupTo(cfg, os.Stderr)

	if err := newRootCmd(cfg, log).Execute(); err != nil {
		os.Exit(1)
	}
}
