package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/chronicle/internal/config"
	"github.com/jwebster45206/chronicle/pkg/analysis"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/narration"
)

// defaultSpeakRate paces narrations printed to the terminal when no
// speech command is configured.
const defaultSpeakRate = 180

type explorer struct {
	cfg     *config.Config
	log     *slog.Logger
	dataDir string
}

func newRootCmd(cfg *config.Config, log *slog.Logger) *cobra.Command {
	x := &explorer{cfg: cfg, log: log}

	root := &cobra.Command{
		Use:   "explore",
		Short: "Explore historical eras from the terminal",
		Long: `Explore the Chronicle era catalog without running the API.

The built-in eras are overlaid by the era files (JSON, YAML or TOML) found in
<data-dir>/eras, the same way the API loads them.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&x.dataDir, "data-dir", cfg.DataDir, "directory holding the eras/ data files")

	root.AddCommand(
		&cobra.Command{
			Use:   "eras",
			Short: "List the available eras",
			Args:  cobra.NoArgs,
			RunE:  x.runEras,
		},
		&cobra.Command{
			Use:   "regions <era>",
			Short: "List the regions of an era with their previews",
			Args:  cobra.ExactArgs(1),
			RunE:  x.runRegions,
		},
		&cobra.Command{
			Use:   "facts <era>",
			Short: "Show the era's description and facts",
			Args:  cobra.ExactArgs(1),
			RunE:  x.runFacts,
		},
		x.analyzeCmd(),
		x.narrateCmd(),
	)
	return root
}

// catalog loads the built-in eras overlaid by the data directory's files.
// Files that fail to load or validate are logged and skipped.
func (x *explorer) catalog(ctx context.Context) (*era.Catalog, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	erasDir := filepath.Join(x.dataDir, "eras")
	loaded, err := era.LoadDir(ctx, erasDir, func(path string, err error) {
		x.log.Warn("Skipping era file", "path", path, "error", err)
	})
	if err != nil {
		return nil, err
	}
	x.log.Debug("Era files loaded", "dir", erasDir, "count", len(loaded))

	return era.NewCatalog(era.Overlay(era.Default(), loaded), era.DefaultDescriber), nil
}

func (x *explorer) runEras(cmd *cobra.Command, _ []string) error {
	cat, err := x.catalog(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tREGIONS")
	for _, world := range cat.Worlds() {
		fmt.Fprintf(w, "%s\t%s\t%d\n", world.ID, world.Name, len(world.Regions))
	}
	return w.Flush()
}

func (x *explorer) runRegions(cmd *cobra.Command, args []string) error {
	cat, err := x.catalog(cmd.Context())
	if err != nil {
		return err
	}
	world, err := cat.World(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n", world.Name)
	for _, r := range world.Regions {
		fmt.Fprintf(out, "%s (%s, %d words)\n  %s\n\n", r.Name, r.ID, era.WordCount(r.Description), era.Preview(r.Description))
	}
	return nil
}

func (x *explorer) runFacts(cmd *cobra.Command, args []string) error {
	cat, err := x.catalog(cmd.Context())
	if err != nil {
		return err
	}
	world, err := cat.World(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n%s\n", world.Name, world.Description)
	if len(world.Facts) == 0 {
		return nil
	}
	fmt.Fprintln(out, "\nDid you know?")
	for _, fact := range world.Facts {
		fmt.Fprintf(out, "  • %s\n", fact)
	}
	return nil
}

func (x *explorer) analyzeCmd() *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "analyze <era> <region>",
		Short: "Run the NLWEB analysis on a region's description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := x.catalog(cmd.Context())
			if err != nil {
				return err
			}
			region, ctx, err := analysis.RegionContext(cat, args[0], args[1])
			if err != nil {
				return err
			}

			p := analysis.NewProcessor(analysis.DefaultConfig())
			res := p.Analyze(region.Description, ctx)
			metrics := p.Metrics(region.Description)

			out := cmd.OutOrStdout()
			if html {
				fmt.Fprintln(out, analysis.RenderHTML(res.EnrichedText))
			} else {
				fmt.Fprintln(out, res.EnrichedText)
			}
			fmt.Fprintf(out, "\nReadability: %.1f\n", res.ReadabilityScore)
			fmt.Fprintf(out, "Sentiment:   %s\n", res.Sentiment)
			fmt.Fprintf(out, "Length:      %d sentences, %d words\n", metrics.Sentences, metrics.Words)
			if len(res.KeyPhrases) > 0 {
				fmt.Fprintf(out, "Key phrases: %s\n", strings.Join(res.KeyPhrases, ", "))
			}
			for _, l := range res.ContextualLinks {
				fmt.Fprintf(out, "Related:     %s (%s)\n", l.Text, l.Context)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "render entity tags as HTML highlight spans")
	return cmd
}

func (x *explorer) narrateCmd() *cobra.Command {
	var (
		seed   uint64
		speech bool
		speak  bool
		rate   int
	)
	cmd := &cobra.Command{
		Use:   "narrate <era> <region>",
		Short: "Narrate a region as an immersive passage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := x.catalog(cmd.Context())
			if err != nil {
				return err
			}
			region, err := cat.Region(args[0], args[1])
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64()
				if x.cfg.NarrationSeed != nil {
					seed = *x.cfg.NarrationSeed
				}
			}
			text := narration.NewBuilder(narration.NewRand(seed)).Build(region.Name, region.Description)

			out := cmd.OutOrStdout()
			if speak {
				return x.speak(cmd.Context(), out, region, text, rate)
			}
			if speech {
				text = narration.PrepareForSpeech(text)
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible narrations")
	cmd.Flags().BoolVar(&speech, "speech", false, "print the text as prepared for a speech engine")
	cmd.Flags().BoolVar(&speak, "speak", false, "voice the narration through SPEECH_COMMAND, or print it word by word")
	cmd.Flags().IntVar(&rate, "rate", defaultSpeakRate, "words per minute when printing word by word (0 prints at once)")
	return cmd
}

// speak plays text and waits for it to finish. An interrupt stops playback.
func (x *explorer) speak(ctx context.Context, out io.Writer, region era.Region, text string, rate int) error {
	var speaker narration.Speaker = &narration.WriterSpeaker{W: out, WordsPerMinute: rate}
	if cs := narration.ParseCommandSpeaker(x.cfg.SpeechCommand); cs != nil {
		speaker = cs
	}
	player := narration.NewPlayer(speaker, x.log)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	finished := make(chan struct{})
	player.Play(region.EraID+"/"+region.ID, text)
	go func() {
		player.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-ctx.Done():
		player.Stop()
		<-finished
	}
	return nil
}
