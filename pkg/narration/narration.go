// Package narration turns a region description into an immersive
// narrated passage and manages its playback.
package narration

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rand picks a uniformly random index in [0, n).
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// LockedRand is a seeded generator safe for concurrent use.
type LockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedRand returns a concurrency-safe generator seeded with seed.
func NewLockedRand(seed uint64) *LockedRand {
	return &LockedRand{rng: NewRand(seed)}
}

func (l *LockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

// Fragments are the stock sentences a narration is framed with.
var Fragments = struct {
	Atmosphere  [4]string
	Sensory     [4]string
	Transitions [4]string
}{
	Atmosphere: [4]string{
		"Close your eyes and let the centuries fall away...",
		"The air shifts around you as time itself begins to bend...",
		"Listen closely, for the past has a story to tell...",
		"Step softly now, traveler, into a world long gone...",
	},
	Sensory: [4]string{
		"Imagine the sights and sounds around you as ",
		"Feel the ground beneath your feet and notice how ",
		"Breathe in the scents of another age, where ",
		"Hear the voices echoing through the streets as ",
	},
	Transitions: [4]string{
		"As the days unfold, you witness how ",
		"Moving deeper into this world, you discover that ",
		"Time flows onward, and you see that ",
		"Turning a corner in history, you learn that ",
	},
}

// fragmentSeparator splits a description into narrated pieces.
const fragmentSeparator = ". "

// Builder composes narrations using an injected random source.
type Builder struct {
	rng Rand
}

// NewBuilder creates a builder that draws template fragments from rng.
func NewBuilder(rng Rand) *Builder {
	return &Builder{rng: rng}
}

// Build frames description with a random opener, sensory invocation and
// transition. Short descriptions produce empty segments rather than errors.
func (b *Builder) Build(regionName, description string) string {
	atmosphere := Fragments.Atmosphere[b.rng.IntN(len(Fragments.Atmosphere))]
	sensory := Fragments.Sensory[b.rng.IntN(len(Fragments.Sensory))]
	transition := Fragments.Transitions[b.rng.IntN(len(Fragments.Transitions))]

	parts := strings.Split(description, fragmentSeparator)

	var sb strings.Builder
	sb.WriteString(atmosphere)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "**Chapter: %s**", regionName)
	sb.WriteString("\n\n")
	sb.WriteString(sensory + cases.Lower(language.Und).String(parts[0]))
	sb.WriteString("\n\n")
	sb.WriteString(transition + strings.Join(window(parts, 1, 4), fragmentSeparator))
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(window(parts, 4, len(parts)), fragmentSeparator))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Your journey through %s lingers in memory... Where will history take you next?", regionName)
	return sb.String()
}

// window returns s[from:to] clamped to the bounds of s.
func window(s []string, from, to int) []string {
	from = min(from, len(s))
	to = min(max(to, from), len(s))
	return s[from:to]
}
