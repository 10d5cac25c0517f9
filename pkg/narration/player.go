package narration

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Player plays at most one narration at a time. Starting a narration
// cancels whatever was playing before it.
type Player struct {
	speaker Speaker
	logger  *slog.Logger

	mu     sync.Mutex
	active string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlayer creates a player that voices narrations through speaker.
func NewPlayer(speaker Speaker, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{speaker: speaker, logger: logger}
}

// Play stops the current narration, if any, and starts text under key.
// It returns once the new narration has started.
func (p *Player) Play(key, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	p.active = key
	p.cancel = cancel
	p.done = done

	go func() {
		defer close(done)
		defer cancel()

		p.logger.Debug("Narration started", "key", key, "length", len(text))
		err := p.speaker.Speak(ctx, PrepareForSpeech(text))
		switch {
		case errors.Is(err, context.Canceled):
			p.logger.Debug("Narration cancelled", "key", key)
		case err != nil:
			p.logger.Warn("Narration failed", "key", key, "error", err)
		default:
			p.logger.Debug("Narration finished", "key", key)
		}

		p.mu.Lock()
		if p.done == done {
			p.active = ""
			p.cancel = nil
			p.done = nil
		}
		p.mu.Unlock()
	}()
}

// Toggle stops the narration if key is playing, otherwise plays text
// under key. It reports whether key is playing afterwards.
func (p *Player) Toggle(key, text string) bool {
	p.mu.Lock()
	if p.active == key && p.done != nil {
		p.stopLocked()
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	p.Play(key, text)
	return true
}

// Stop cancels the current narration and waits for it to end.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Active returns the key of the narration playing, or "".
func (p *Player) Active() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Wait blocks until the current narration ends on its own or is stopped.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// stopLocked cancels the playing narration and waits for its goroutine
// to exit. p.mu is released while waiting; if another narration started
// in the meantime it is stopped too.
func (p *Player) stopLocked() {
	for p.cancel != nil {
		cancel, done := p.cancel, p.done
		p.active = ""
		p.cancel = nil
		p.done = nil

		cancel()
		p.mu.Unlock()
		<-done
		p.mu.Lock()
	}
}
