package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/chronicle/internal/config"
	"github.com/jwebster45206/chronicle/pkg/narration"
)

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEras(t *testing.T) {
	out, err := run(t, &config.Config{DataDir: t.TempDir()}, "eras")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[3], "classical-antiquity")
	assert.Contains(t, lines[3], "6")
}

func TestEras_DataFiles(t *testing.T) {
	dir := t.TempDir()
	erasDir := filepath.Join(dir, "eras")
	require.NoError(t, os.MkdirAll(erasDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(erasDir, "bronze.yaml"), []byte(`
id: bronze-age
name: Bronze Age
description: Palaces, chariots and long-distance trade.
regions:
  - Mycenae
  - Hittite Kingdom
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(erasDir, "broken.json"), []byte(`{"id": "Broken Era"}`), 0o644))

	cfg := &config.Config{DataDir: dir}
	out, err := run(t, cfg, "eras")
	require.NoError(t, err)
	assert.Contains(t, out, "bronze-age")
	assert.NotContains(t, out, "Broken Era", "invalid files are skipped")

	out, err = run(t, cfg, "regions", "bronze-age")
	require.NoError(t, err)
	assert.Contains(t, out, "Hittite Kingdom (hittite-kingdom,")
}

func TestRegionsAndFacts(t *testing.T) {
	cfg := &config.Config{DataDir: t.TempDir()}

	out, err := run(t, cfg, "regions", "classical-antiquity")
	require.NoError(t, err)
	assert.Contains(t, out, "Roman Empire (roman-empire,")
	assert.Contains(t, out, "...")

	out, err = run(t, cfg, "facts", "classical-antiquity")
	require.NoError(t, err)
	assert.Contains(t, out, "Did you know?")

	_, err = run(t, cfg, "facts", "atlantis")
	assert.Error(t, err)

	_, err = run(t, cfg, "regions")
	assert.Error(t, err, "era argument is required")
}

func TestAnalyze(t *testing.T) {
	cfg := &config.Config{DataDir: t.TempDir()}

	out, err := run(t, cfg, "analyze", "classical-antiquity", "roman-empire")
	require.NoError(t, err)
	assert.Contains(t, out, `<nlweb:entity type="political">Roman Empire</nlweb:entity>`)
	assert.Contains(t, out, "Key phrases: Roman Empire")

	out, err = run(t, cfg, "analyze", "classical-antiquity", "roman-empire", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, `<span class="nlweb-enhanced">Roman Empire</span>`)
	assert.NotContains(t, out, "nlweb:")

	_, err = run(t, cfg, "analyze", "classical-antiquity", "atlantis")
	assert.Error(t, err)
}

func TestNarrate(t *testing.T) {
	cfg := &config.Config{DataDir: t.TempDir()}

	first, err := run(t, cfg, "narrate", "classical-antiquity", "roman-empire", "--seed", "42")
	require.NoError(t, err)
	second, err := run(t, cfg, "narrate", "classical-antiquity", "roman-empire", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "**Chapter: Roman Empire**")

	speech, err := run(t, cfg, "narrate", "classical-antiquity", "roman-empire", "--seed", "42", "--speech")
	require.NoError(t, err)
	assert.Equal(t, narration.PrepareForSpeech(strings.TrimSuffix(first, "\n"))+"\n", speech)

	seed := uint64(42)
	seeded, err := run(t, &config.Config{DataDir: t.TempDir(), NarrationSeed: &seed}, "narrate", "classical-antiquity", "roman-empire")
	require.NoError(t, err)
	assert.Equal(t, first, seeded, "NARRATION_SEED is the default seed")
}

func TestNarrate_Speak(t *testing.T) {
	out, err := run(t, &config.Config{DataDir: t.TempDir()}, "narrate", "classical-antiquity", "roman-empire", "--seed", "1", "--speak", "--rate", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Chapter: Roman Empire")
	assert.NotContains(t, out, "**")
}
