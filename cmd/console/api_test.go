package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/chronicle/internal/handlers"
	"github.com/jwebster45206/chronicle/pkg/analysis"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/narration"
	"github.com/jwebster45206/chronicle/pkg/session"
	"github.com/jwebster45206/chronicle/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAPI serves the real handlers over in-memory storage.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	store := storage.NewMockStorage(era.Default()...)
	log := testLogger()

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	erasHandler := handlers.NewErasHandler(store, nil,
		analysis.NewProcessor(analysis.DefaultConfig()),
		narration.NewBuilder(narration.NewLockedRand(1)), log)
	mux.Handle("/v1/eras", erasHandler)
	mux.Handle("/v1/eras/", erasHandler)
	sessionHandler := handlers.NewSessionHandler(store, nil, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestTestConnection(t *testing.T) {
	srv := newTestAPI(t)
	assert.True(t, testConnection(srv.Client(), srv.URL))

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	assert.False(t, testConnection(http.DefaultClient, closed.URL))
}

func TestAPIClient_Eras(t *testing.T) {
	srv := newTestAPI(t)
	client := srv.Client()

	eras, err := listEras(client, srv.URL)
	require.NoError(t, err)
	require.Len(t, eras, 10)
	assert.Equal(t, "prehistoric-era", eras[0].ID)

	world, err := getWorld(client, srv.URL, "classical-antiquity")
	require.NoError(t, err)
	assert.Len(t, world.Regions, 6)

	res, err := getAnalysis(client, srv.URL, "classical-antiquity", "roman-empire")
	require.NoError(t, err)
	assert.Equal(t, []string{"Roman Empire"}, res.KeyPhrases)

	narr, err := getNarration(client, srv.URL, "classical-antiquity", "roman-empire")
	require.NoError(t, err)
	assert.Contains(t, narr.Text, "**Chapter: Roman Empire**")

	_, err = getWorld(client, srv.URL, "atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Era not found: atlantis")
}

func TestAPIClient_Sessions(t *testing.T) {
	srv := newTestAPI(t)
	client := srv.Client()

	s, err := createSession(client, srv.URL, "")
	require.NoError(t, err)
	assert.Equal(t, "prehistoric-era", s.SelectedEraID)

	s, err = applyAction(client, srv.URL, s.ID, session.Action{Type: session.ActionSelectEra, EraID: "industrial-age"})
	require.NoError(t, err)
	assert.Equal(t, "industrial-age", s.SelectedEraID)

	_, err = applyAction(client, srv.URL, s.ID, session.Action{Type: "fly"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")

	require.NoError(t, deleteSession(client, srv.URL, s.ID))

	_, err = applyAction(client, srv.URL, s.ID, session.Action{Type: session.ActionStopNarration})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Session not found")

	_, err = createSession(client, srv.URL, "atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown era")
}
