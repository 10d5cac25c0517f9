package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/chronicle/pkg/analysis"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/narration"
	"github.com/jwebster45206/chronicle/pkg/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(
		storage.NewMockStorage(era.Default()...),
		analysis.NewProcessor(analysis.DefaultConfig()),
		narration.NewBuilder(narration.NewLockedRand(1)),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	return s
}

func TestNewServer(t *testing.T) {
	t.Run("nil era source returns error", func(t *testing.T) {
		s, err := NewServer(nil, nil, nil, nil)
		assert.ErrorIs(t, err, ErrMissingEras)
		assert.Nil(t, s)
	})

	t.Run("defaults fill the optional collaborators", func(t *testing.T) {
		s, err := NewServer(storage.NewMockStorage(), nil, nil, nil)
		require.NoError(t, err)
		assert.NotNil(t, s.processor)
		assert.NotNil(t, s.builder)
		assert.NotNil(t, s.logger)
	})
}

func TestServer_OverTransport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newTestServer(t)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := s.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer func() { _ = serverSession.Close() }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer func() { _ = session.Close() }()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_eras", "get_era", "analyze_region", "narrate_region"}, names)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "narrate_region",
		Arguments: map[string]any{"era_id": "classical-antiquity", "region_id": "roman-empire", "seed": 7},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out NarrateOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Roman Empire", out.Region)
	assert.NotEmpty(t, out.Text)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_era",
		Arguments: map[string]any{"era_id": "atlantis"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError, "an unknown era is a tool error")

	read, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "chronicle://eras/classical-antiquity/regions/roman-empire"})
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)
	assert.Contains(t, read.Contents[0].Text, "Roman Empire")
}
