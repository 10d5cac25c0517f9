// Package analysis implements the NLWEB text processor used to enrich
// region descriptions: semantic tagging of dates and historical entities,
// links to sibling regions, and simple readability metrics.
package analysis

import (
	"regexp"
	"strings"
)

// LinkContext is the explanation attached to every contextual link.
const LinkContext = "Related region in the same historical period"

// Sentiment classifies the tone of a description.
type Sentiment string

const (
	// Educational is a declared outcome that no rule currently produces.
	Educational Sentiment = "educational"
	Engaging    Sentiment = "engaging"
	Academic    Sentiment = "academic"
)

// Config switches the three processing steps on and off.
type Config struct {
	SemanticEnrichment        bool `json:"semantic_enrichment"`
	ContextualLinking         bool `json:"contextual_linking"`
	NaturalLanguageProcessing bool `json:"natural_language_processing"`
}

// DefaultConfig enables every step.
func DefaultConfig() Config {
	return Config{
		SemanticEnrichment:        true,
		ContextualLinking:         true,
		NaturalLanguageProcessing: true,
	}
}

// Context describes where a piece of text lives.
type Context struct {
	EraName      string   `json:"era_name"`
	RegionName   string   `json:"region_name"`
	SiblingNames []string `json:"sibling_names"`
}

// Link points from a description to a sibling region it mentions.
type Link struct {
	Text    string `json:"text"`
	Context string `json:"context"`
}

// Result is the combined output of Analyze.
type Result struct {
	EnrichedText     string    `json:"enriched_text"`
	ContextualLinks  []Link    `json:"contextual_links"`
	ReadabilityScore float64   `json:"readability_score"`
	KeyPhrases       []string  `json:"key_phrases"`
	Sentiment        Sentiment `json:"sentiment"`
}

// TopKeyPhrases returns at most n key phrases.
func (r Result) TopKeyPhrases(n int) []string {
	if n < 0 || n >= len(r.KeyPhrases) {
		return r.KeyPhrases
	}
	return r.KeyPhrases[:n]
}

// TopLinks returns at most n contextual links.
func (r Result) TopLinks(n int) []Link {
	if n < 0 || n >= len(r.ContextualLinks) {
		return r.ContextualLinks
	}
	return r.ContextualLinks[:n]
}

var (
	datePattern         = regexp.MustCompile(`(\d{4})\s*(BCE|CE)`)
	politicalPattern    = regexp.MustCompile(`([A-Z][a-z]+\s+(?:Empire|Kingdom|Dynasty))`)
	civilizationPattern = regexp.MustCompile(`([A-Z][a-z]+\s+(?i:civilization))`)
	keyPhrasePattern    = regexp.MustCompile(`[A-Z][a-z]+\s+(?i:Empire|Kingdom|Dynasty|civilization|period|age)`)
	sentenceBreak       = regexp.MustCompile(`[.!?]+`)
)

var engagingWords = []string{"discover", "explore", "fascinating", "remarkable", "significant"}

// Processor runs the analysis steps. It holds no mutable state and is
// safe for concurrent use.
type Processor struct {
	config Config
}

// NewProcessor creates a processor with the given configuration.
func NewProcessor(cfg Config) *Processor {
	return &Processor{config: cfg}
}

// Config returns the processor's configuration.
func (p *Processor) Config() Config {
	return p.config
}

// Analyze enriches text, links sibling regions and computes metrics.
// It accepts any input, including the empty string.
func (p *Processor) Analyze(text string, ctx Context) Result {
	m := p.Metrics(text)
	return Result{
		EnrichedText:     p.Enrich(text),
		ContextualLinks:  p.Links(text, ctx.SiblingNames),
		ReadabilityScore: m.ReadabilityScore,
		KeyPhrases:       m.KeyPhrases,
		Sentiment:        m.Sentiment,
	}
}

// Enrich wraps dates, political entities and civilizations in nlweb tags.
// The substitutions run in that order over the output of the previous one,
// so a later pattern can match text an earlier one already wrapped.
func (p *Processor) Enrich(text string) string {
	if !p.config.SemanticEnrichment {
		return text
	}
	out := datePattern.ReplaceAllString(text, `<nlweb:date>$1 $2</nlweb:date>`)
	out = politicalPattern.ReplaceAllString(out, `<nlweb:entity type="political">$1</nlweb:entity>`)
	out = civilizationPattern.ReplaceAllString(out, `<nlweb:entity type="civilization">$1</nlweb:entity>`)
	return out
}

// Links returns one link per sibling name found in text, ignoring case,
// in sibling order.
func (p *Processor) Links(text string, siblings []string) []Link {
	links := make([]Link, 0)
	if !p.config.ContextualLinking {
		return links
	}

	lower := strings.ToLower(text)
	for _, name := range siblings {
		if strings.Contains(lower, strings.ToLower(name)) {
			links = append(links, Link{Text: name, Context: LinkContext})
		}
	}
	return links
}

// Metrics holds the natural language measurements of a text.
type Metrics struct {
	Sentences        int       `json:"sentences"`
	Words            int       `json:"words"`
	ReadabilityScore float64   `json:"readability_score"`
	KeyPhrases       []string  `json:"key_phrases"`
	Sentiment        Sentiment `json:"sentiment"`
}

// Metrics computes sentence and word counts, readability, key phrases and
// sentiment for text.
func (p *Processor) Metrics(text string) Metrics {
	if !p.config.NaturalLanguageProcessing {
		return Metrics{KeyPhrases: []string{}, Sentiment: Academic}
	}

	sentences := countSentences(text)
	words := len(strings.Fields(text))

	return Metrics{
		Sentences:        sentences,
		Words:            words,
		ReadabilityScore: readability(words, sentences),
		KeyPhrases:       keyPhrases(text),
		Sentiment:        sentiment(text),
	}
}

// countSentences counts the non-blank fragments between sentence
// terminators. Text with no terminator at all has no sentences.
func countSentences(text string) int {
	if !sentenceBreak.MatchString(text) {
		return 0
	}
	n := 0
	for _, s := range sentenceBreak.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// readability scores text from 0 to 100, penalising long sentences.
// Text without a sentence scores 0.
func readability(words, sentences int) float64 {
	if sentences == 0 {
		return 0
	}
	score := 100 - 2*(float64(words)/float64(sentences))
	return max(0, min(100, score))
}

func keyPhrases(text string) []string {
	phrases := make([]string, 0)
	seen := make(map[string]bool)
	for _, match := range keyPhrasePattern.FindAllString(text, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		phrases = append(phrases, match)
	}
	return phrases
}

func sentiment(text string) Sentiment {
	lower := strings.ToLower(text)
	for _, w := range engagingWords {
		if strings.Contains(lower, w) {
			return Engaging
		}
	}
	return Academic
}
