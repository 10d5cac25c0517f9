package analysis

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/chronicle/pkg/era"
)

func TestProcessor_Analyze_RomanEmpire(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	got := p.Analyze("The Roman Empire conquered 100 BCE lands.", Context{
		EraName:      "Classical Antiquity",
		RegionName:   "Rome",
		SiblingNames: []string{"Athens"},
	})

	// Only four-digit years are tagged as dates, so "100 BCE" stays plain.
	expected := Result{
		EnrichedText:     `The <nlweb:entity type="political">Roman Empire</nlweb:entity> conquered 100 BCE lands.`,
		ContextualLinks:  []Link{},
		ReadabilityScore: 86,
		KeyPhrases:       []string{"Roman Empire"},
		Sentiment:        Academic,
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Analyze() mismatch (-expected +got):\n%s", diff)
	}
}

func TestProcessor_Enrich(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "date with space",
			input:    "Columbus sailed in 1492 CE.",
			expected: "Columbus sailed in <nlweb:date>1492 CE</nlweb:date>.",
		},
		{
			name:     "date without space is normalised",
			input:    "Founded 3000BCE by farmers",
			expected: "Founded <nlweb:date>3000 BCE</nlweb:date> by farmers",
		},
		{
			name:     "three digit years are not dates",
			input:    "Sacked in 410 CE",
			expected: "Sacked in 410 CE",
		},
		{
			name:     "political entities",
			input:    "The Shang Dynasty and the Kongo Kingdom traded with the Mali Empire.",
			expected: `The <nlweb:entity type="political">Shang Dynasty</nlweb:entity> and the <nlweb:entity type="political">Kongo Kingdom</nlweb:entity> traded with the <nlweb:entity type="political">Mali Empire</nlweb:entity>.`,
		},
		{
			name:     "political suffix is case sensitive",
			input:    "The Roman empire",
			expected: "The Roman empire",
		},
		{
			name:     "civilization suffix ignores case",
			input:    "The Maya civilization and the Inca CIVILIZATION",
			expected: `The <nlweb:entity type="civilization">Maya civilization</nlweb:entity> and the <nlweb:entity type="civilization">Inca CIVILIZATION</nlweb:entity>`,
		},
		{
			name:     "civilization needs a capitalised word",
			input:    "forever change human civilization",
			expected: "forever change human civilization",
		},
		{
			name:     "all three in order",
			input:    "In 1206 CE the Mongol Empire met Chinese civilization.",
			expected: `In <nlweb:date>1206 CE</nlweb:date> the <nlweb:entity type="political">Mongol Empire</nlweb:entity> met <nlweb:entity type="civilization">Chinese civilization</nlweb:entity>.`,
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Enrich(tt.input); got != tt.expected {
				t.Errorf("Enrich(%q)\n got: %s\nwant: %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestProcessor_Enrich_PlainTextUnchanged(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	inputs := []string{
		"A time of both crisis and transformation.",
		"the roman empire, in lower case",
		"Steam power, railways, and factories!",
	}
	for _, in := range inputs {
		assert.Equal(t, in, p.Enrich(in))
	}
}

func TestProcessor_Links(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	t.Run("matches siblings case-insensitively in sibling order", func(t *testing.T) {
		links := p.Links("Trade flowed from SPARTA to athens.", []string{"Athens", "Corinth", "Sparta"})
		assert.Equal(t, []Link{
			{Text: "Athens", Context: LinkContext},
			{Text: "Sparta", Context: LinkContext},
		}, links)
	})

	t.Run("no siblings", func(t *testing.T) {
		links := p.Links("Athens and Sparta", nil)
		assert.NotNil(t, links)
		assert.Empty(t, links)
	})

	t.Run("substring matches count", func(t *testing.T) {
		links := p.Links("The Qing Chinas", []string{"Qing China"})
		assert.Len(t, links, 1)
	})
}

func TestProcessor_Metrics(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	tests := []struct {
		name        string
		input       string
		sentences   int
		words       int
		readability float64
	}{
		{name: "empty", input: "", sentences: 0, words: 0, readability: 0},
		{name: "no terminator", input: "a run on thought with no end", sentences: 0, words: 7, readability: 0},
		{name: "trailing fragment counts", input: "It rose. It fell", sentences: 2, words: 4, readability: 96},
		{name: "only punctuation", input: "...!?", sentences: 0, words: 1, readability: 0},
		{name: "short sentences", input: "Go. Run!", sentences: 2, words: 2, readability: 98},
		{name: "runs of terminators", input: "Really?! Yes... Fine.", sentences: 3, words: 3, readability: 98},
		{name: "long sentence clamps to zero", input: strings.Repeat("word ", 60) + ".", sentences: 1, words: 61, readability: 0},
		{name: "extra whitespace", input: "  One   two\tthree.\n", sentences: 1, words: 3, readability: 94},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := p.Metrics(tt.input)
			assert.Equal(t, tt.sentences, m.Sentences, "sentences")
			assert.Equal(t, tt.words, m.Words, "words")
			assert.InDelta(t, tt.readability, m.ReadabilityScore, 1e-9, "readability")
		})
	}
}

func TestProcessor_Metrics_NoTerminatorScoresZero(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	for _, in := range []string{"", "   ", "\n\t", "?!..", "no punctuation at all", "Roman Empire"} {
		assert.Zero(t, p.Metrics(in).ReadabilityScore, "input %q", in)
	}
}

func TestProcessor_KeyPhrases(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	text := "The Roman Empire rivaled the Persian Empire. The Roman Empire fell in the Bronze age and the Golden Age."
	m := p.Metrics(text)

	assert.Equal(t, []string{"Roman Empire", "Persian Empire", "Bronze age", "Golden Age"}, m.KeyPhrases)
	for _, phrase := range m.KeyPhrases {
		assert.Contains(t, text, phrase)
	}
}

func TestProcessor_KeyPhrases_PrefixMatch(t *testing.T) {
	// The suffix has no word boundary, so "agents" satisfies "age".
	p := NewProcessor(DefaultConfig())
	assert.Equal(t, []string{"Secret age"}, p.Metrics("Secret agents met.").KeyPhrases)
}

func TestProcessor_Sentiment(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	tests := []struct {
		input    string
		expected Sentiment
	}{
		{"Explore the ruins of Carthage.", Engaging},
		{"A REMARKABLE harbour.", Engaging},
		{"Discovery of bronze.", Engaging},
		{"Grain was stored in silos.", Academic},
		{"", Academic},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, p.Metrics(tt.input).Sentiment, tt.input)
	}
}

func TestProcessor_DisabledSteps(t *testing.T) {
	p := NewProcessor(Config{})
	text := "In 1492 CE the Inca Empire was a fascinating place near Cusco."

	r := p.Analyze(text, Context{SiblingNames: []string{"Cusco"}})

	assert.Equal(t, text, r.EnrichedText)
	assert.Empty(t, r.ContextualLinks)
	assert.Zero(t, r.ReadabilityScore)
	assert.Empty(t, r.KeyPhrases)
	assert.Equal(t, Academic, r.Sentiment)
}

func TestResult_Top(t *testing.T) {
	r := Result{
		KeyPhrases: []string{"a", "b", "c"},
		ContextualLinks: []Link{
			{Text: "x"}, {Text: "y"},
		},
	}
	assert.Equal(t, []string{"a", "b"}, r.TopKeyPhrases(2))
	assert.Equal(t, []string{"a", "b", "c"}, r.TopKeyPhrases(6))
	assert.Len(t, r.TopLinks(4), 2)
	assert.Len(t, r.TopLinks(1), 1)
}

func TestRender(t *testing.T) {
	enriched := `In <nlweb:date>1206 CE</nlweb:date> the <nlweb:entity type="political">Mongol Empire</nlweb:entity> rose.`

	assert.Equal(t,
		`In <span class="nlweb-enhanced">1206 CE</span> the <span class="nlweb-enhanced">Mongol Empire</span> rose.`,
		RenderHTML(enriched))

	assert.Equal(t,
		"In [1206 CE] the [Mongol Empire] rose.",
		RenderWith(enriched, func(s string) string { return "[" + s + "]" }))
}

func TestRegionContext(t *testing.T) {
	cat := era.NewCatalog(era.Default(), nil)

	region, ctx, err := RegionContext(cat, "post-classical", "maya-civilization")
	require.NoError(t, err)
	assert.Equal(t, "Maya Civilization", region.Name)
	assert.Equal(t, "Post-Classical Era (600 - 1000 CE)", ctx.EraName)
	assert.Equal(t, "Maya Civilization", ctx.RegionName)
	assert.NotContains(t, ctx.SiblingNames, "Maya Civilization")
	assert.Len(t, ctx.SiblingNames, 6)

	_, _, err = RegionContext(cat, "post-classical", "atlantis")
	assert.ErrorIs(t, err, era.ErrNotFound)
}

func TestAnalyze_Dataset(t *testing.T) {
	cat := era.NewCatalog(era.Default(), nil)
	p := NewProcessor(DefaultConfig())

	for _, w := range cat.Worlds() {
		for _, r := range w.Regions {
			_, ctx, err := RegionContext(cat, w.ID, r.ID)
			require.NoError(t, err)

			res := p.Analyze(r.Description, ctx)

			assert.GreaterOrEqual(t, res.ReadabilityScore, 0.0, r.ID)
			assert.LessOrEqual(t, res.ReadabilityScore, 100.0, r.ID)

			seen := map[string]bool{}
			for _, phrase := range res.KeyPhrases {
				assert.False(t, seen[phrase], "duplicate key phrase %q in %s", phrase, r.ID)
				seen[phrase] = true
				assert.Contains(t, r.Description, phrase)
			}

			for _, link := range res.ContextualLinks {
				assert.NotEqual(t, r.Name, link.Text, "self link in %s", r.ID)
				assert.Contains(t, strings.ToLower(r.Description), strings.ToLower(link.Text))
			}
		}
	}
}

func TestAnalyze_DatasetEnrichment(t *testing.T) {
	cat := era.NewCatalog(era.Default(), nil)
	p := NewProcessor(DefaultConfig())

	region, ctx, err := RegionContext(cat, "prehistoric-era", "african-origins")
	require.NoError(t, err)
	res := p.Analyze(region.Description, ctx)
	assert.Contains(t, res.EnrichedText, "<nlweb:date>3000 BCE</nlweb:date>")

	region, ctx, err = RegionContext(cat, "classical-antiquity", "roman-empire")
	require.NoError(t, err)
	res = p.Analyze(region.Description, ctx)
	assert.Equal(t, []string{"Roman Empire"}, res.KeyPhrases)
	assert.Contains(t, res.EnrichedText, `<nlweb:entity type="political">Roman Empire</nlweb:entity>`)
}
