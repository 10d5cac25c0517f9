package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jwebster45206/chronicle/internal/config"
	"github.com/jwebster45206/chronicle/internal/logger"
	"github.com/jwebster45206/chronicle/pkg/narration"
)

const requestTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "The Chronicle console needs an interactive terminal; try the explore command instead.")
		os.Exit(1)
	}

	logPath := filepath.Join(os.TempDir(), "chronicle-console.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()
	log := logger.SetupTo(cfg, logFile)

	client := &http.Client{
		Timeout: requestTimeout,
	}

	if !testConnection(client, cfg.APIBaseURL) {
		fmt.Fprintf(os.Stderr, "Could not connect to API at %s. Please ensure the API is running.\nTry: docker-compose up -d\n", cfg.APIBaseURL)
		os.Exit(1)
	}

	s, err := createSession(client, cfg.APIBaseURL, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		os.Exit(1)
	}
	log.Info("Session created", "id", s.ID.String(), "era_id", s.SelectedEraID)

	var player *narration.Player
	if speaker := narration.ParseCommandSpeaker(cfg.SpeechCommand); speaker != nil {
		player = narration.NewPlayer(speaker, log)
	}

	p := tea.NewProgram(NewConsoleUI(cfg, client, log, player, s),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	_, runErr := p.Run()

	if player != nil {
		player.Stop()
	}
	if err := deleteSession(client, cfg.APIBaseURL, s.ID); err != nil {
		log.Warn("Failed to delete session", "id", s.ID.String(), "error", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", runErr)
		os.Exit(1)
	}
}
