package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jwebster45206/chronicle/pkg/narration"
)

const (
	// DefaultStreamWPM paces streamed narrations when the client gives no rate.
	DefaultStreamWPM = 180
	maxStreamWPM     = 1000

	streamWriteWait = 10 * time.Second
)

// Stream message types, in the order a client receives them.
const (
	StreamNarration = "narration"
	StreamWord      = "word"
	StreamDone      = "done"
)

// StreamMessage is one websocket frame of a narration stream. The first
// frame carries the whole narration, then one frame per spoken word, then
// a done frame.
type StreamMessage struct {
	Type      string             `json:"type"`
	Narration *NarrationResponse `json:"narration,omitempty"`
	Index     int                `json:"index,omitempty"`
	Word      string             `json:"word,omitempty"`
	Words     int                `json:"words,omitempty"`
}

// AllowOrigins sets the browser origins allowed to open narration streams.
// With none set only same-host pages may connect.
func (h *ErasHandler) AllowOrigins(origins ...string) *ErasHandler {
	h.origins = make(map[string]bool, len(origins))
	for _, o := range origins {
		h.origins[o] = true
	}
	return h
}

func (h *ErasHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if h.origins[origin] || h.origins["*"] {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// streamWords splits speech text into the words a client shows one at a
// time. Pause markers collapse into a single ellipsis.
func streamWords(speech string) []string {
	return strings.Fields(strings.ReplaceAll(speech, narration.PauseMarker, "…"))
}

func (h *ErasHandler) handleNarrationStream(w http.ResponseWriter, r *http.Request, eraID, regionID string) {
	wpm := DefaultStreamWPM
	if raw := r.URL.Query().Get("wpm"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > maxStreamWPM {
			writeError(w, h.logger, http.StatusBadRequest, "wpm must be an integer between 0 and "+strconv.Itoa(maxStreamWPM))
			return
		}
		wpm = v
	}

	resp, ok := h.narrate(w, r, eraID, regionID)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Warn("Failed to upgrade narration stream", "era_id", eraID, "region_id", regionID, "error", err)
		return
	}
	defer func() {
		_ = conn.Close() // Ignore error in defer
	}()
	// Server timeouts would otherwise carry over to the hijacked connection.
	_ = conn.SetReadDeadline(time.Time{})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Anything the client sends, including a close frame, ends the stream.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	words := streamWords(resp.Speech)
	send := func(msg StreamMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		return conn.WriteJSON(msg)
	}

	log := h.logger.With("era_id", eraID, "region_id", regionID)
	log.Debug("Narration stream started", "words", len(words), "wpm", wpm)

	if err := send(StreamMessage{Type: StreamNarration, Narration: &resp, Words: len(words)}); err != nil {
		log.Warn("Narration stream write failed", "error", err)
		return
	}

	var delay time.Duration
	if wpm > 0 {
		delay = time.Minute / time.Duration(wpm)
	}
	for i, word := range words {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				log.Debug("Narration stream cancelled", "sent", i)
				return
			case <-time.After(delay):
			}
		}
		if ctx.Err() != nil {
			log.Debug("Narration stream cancelled", "sent", i)
			return
		}
		if err := send(StreamMessage{Type: StreamWord, Index: i, Word: word}); err != nil {
			log.Warn("Narration stream write failed", "error", err)
			return
		}
	}

	if err := send(StreamMessage{Type: StreamDone, Words: len(words)}); err != nil {
		log.Warn("Narration stream write failed", "error", err)
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "narration complete"))
	log.Debug("Narration stream finished", "words", len(words))
}
