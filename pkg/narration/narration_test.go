package narration

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sequence returns its values in order, wrapping around.
type sequence struct {
	values []int
	next   int
}

func (s *sequence) IntN(n int) int {
	v := s.values[s.next%len(s.values)] % n
	s.next++
	return v
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(&sequence{values: []int{0, 0, 0}})

	got := b.Build("Rome", "Rome was founded. It grew. It fell. It is remembered.")

	expected := "Close your eyes and let the centuries fall away...\n\n" +
		"**Chapter: Rome**\n\n" +
		"Imagine the sights and sounds around you as rome was founded\n\n" +
		"As the days unfold, you witness how It grew. It fell. It is remembered.\n\n" +
		"\n\n" +
		"Your journey through Rome lingers in memory... Where will history take you next?"

	assert.Equal(t, expected, got)
}

func TestBuilder_Build_PicksEachFragmentIndependently(t *testing.T) {
	b := NewBuilder(&sequence{values: []int{3, 1, 2}})

	got := b.Build("Crete", "Palaces rose. Bulls were sacred")

	assert.True(t, strings.HasPrefix(got, Fragments.Atmosphere[3]))
	assert.Contains(t, got, Fragments.Sensory[1]+"palaces rose")
	assert.Contains(t, got, Fragments.Transitions[2]+"Bulls were sacred")
}

func TestBuilder_Build_ClosingSegment(t *testing.T) {
	b := NewBuilder(&sequence{values: []int{0}})

	got := b.Build("Troy", "A. B. C. D. E. F.")
	sections := strings.Split(got, "\n\n")

	assert.Len(t, sections, 6)
	assert.Equal(t, Fragments.Sensory[0]+"a", sections[2])
	assert.Equal(t, Fragments.Transitions[0]+"B. C. D", sections[3])
	assert.Equal(t, "E. F.", sections[4])
}

func TestBuilder_Build_ShortDescriptions(t *testing.T) {
	tests := []struct {
		name        string
		description string
		first       string
		transition  string
	}{
		{name: "empty", description: "", first: "", transition: ""},
		{name: "single fragment", description: "Only One Sentence.", first: "only one sentence.", transition: ""},
		{name: "two fragments", description: "First. Second", first: "first", transition: "Second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(&sequence{values: []int{0}})
			sections := strings.Split(b.Build("Ur", tt.description), "\n\n")

			assert.Len(t, sections, 6)
			assert.Equal(t, Fragments.Sensory[0]+tt.first, sections[2])
			assert.Equal(t, Fragments.Transitions[0]+tt.transition, sections[3])
			assert.Equal(t, "", sections[4])
		})
	}
}

func TestBuilder_Build_RegionNamedTwice(t *testing.T) {
	description := "Rome was founded. It grew. It fell. It is remembered."
	for a := range 4 {
		for s := range 4 {
			for tr := range 4 {
				b := NewBuilder(&sequence{values: []int{a, s, tr}})
				got := b.Build("Rome", description)
				assert.NotEmpty(t, got)
				assert.GreaterOrEqual(t, strings.Count(got, "Rome"), 2, "fragments %d/%d/%d", a, s, tr)
			}
		}
	}
}

func TestBuilder_Build_SeededIsReproducible(t *testing.T) {
	description := "The Silk Road linked east and west. Caravans carried silk. Ideas travelled too."

	first := NewBuilder(NewRand(42)).Build("Samarkand", description)
	second := NewBuilder(NewRand(42)).Build("Samarkand", description)

	assert.Equal(t, first, second)
}

func TestBuilder_Build_AllFragmentsReachable(t *testing.T) {
	b := NewBuilder(NewRand(7))
	seen := map[string]bool{}
	for range 200 {
		seen[strings.SplitN(b.Build("X", "y"), "\n\n", 2)[0]] = true
	}
	assert.Len(t, seen, len(Fragments.Atmosphere))
}

func TestLockedRand_Concurrent(t *testing.T) {
	r := NewLockedRand(1)
	b := NewBuilder(r)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = b.Build("Athens", "Democracy was born. Philosophy flourished.")
			}
		}()
	}
	wg.Wait()
}

func TestPrepareForSpeech(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bold markers removed",
			input:    "**Chapter: Rome**",
			expected: "Chapter: Rome",
		},
		{
			name:     "colon and semicolon spacing",
			input:    "Note:the river ;  the hills",
			expected: "Note: the river; the hills",
		},
		{
			name:     "ellipsis becomes a long pause",
			input:    "Wait...what?",
			expected: "Wait " + PauseMarker + " what?",
		},
		{
			name:     "unicode ellipsis",
			input:    "Listen… closely",
			expected: "Listen " + PauseMarker + " closely",
		},
		{
			name:     "paragraphs kept",
			input:    "Away...\n\n**Chapter: Ur**\n\nEnd",
			expected: "Away " + PauseMarker + "\n\nChapter: Ur\n\nEnd",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrepareForSpeech(tt.input))
		})
	}
}

func TestPrepareForSpeech_BuiltNarration(t *testing.T) {
	b := NewBuilder(&sequence{values: []int{0}})
	speech := PrepareForSpeech(b.Build("Rome", "Rome was founded. It grew."))

	assert.NotContains(t, speech, "**")
	assert.NotContains(t, speech, "...")
	assert.Contains(t, speech, "Chapter: Rome")
	assert.Contains(t, speech, PauseMarker)
}
