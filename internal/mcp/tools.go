package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jwebster45206/chronicle/pkg/analysis"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/narration"
)

// ListErasInput is the input schema for the list_eras tool.
type ListErasInput struct{}

// EraInfo is one era of the list_eras output.
type EraInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Regions     []string `json:"regions"`
}

// ListErasOutput is the output schema for the list_eras tool.
type ListErasOutput struct {
	Eras  []EraInfo `json:"eras"`
	Count int       `json:"count"`
}

// EraInput is the input schema for the get_era tool.
type EraInput struct {
	EraID string `json:"era_id" jsonschema:"the kebab-case id of the era, e.g. classical-antiquity"`
}

// RegionInput is the input schema for the analyze_region tool.
type RegionInput struct {
	EraID    string `json:"era_id" jsonschema:"the kebab-case id of the era"`
	RegionID string `json:"region_id" jsonschema:"the kebab-case id of the region within the era, e.g. roman-empire"`
}

// AnalyzeOutput is the output schema for the analyze_region tool.
type AnalyzeOutput struct {
	Region           string          `json:"region"`
	EnrichedText     string          `json:"enriched_text"`
	HTML             string          `json:"html"`
	ReadabilityScore float64         `json:"readability_score"`
	Sentiment        string          `json:"sentiment"`
	KeyPhrases       []string        `json:"key_phrases"`
	RelatedRegions   []analysis.Link `json:"related_regions"`
	Sentences        int             `json:"sentences"`
	Words            int             `json:"words"`
}

// NarrateInput is the input schema for the narrate_region tool.
type NarrateInput struct {
	EraID    string  `json:"era_id" jsonschema:"the kebab-case id of the era"`
	RegionID string  `json:"region_id" jsonschema:"the kebab-case id of the region within the era"`
	Seed     *uint64 `json:"seed,omitempty" jsonschema:"seed for a reproducible narration"`
}

// NarrateOutput is the output schema for the narrate_region tool.
type NarrateOutput struct {
	Region string `json:"region"`
	Text   string `json:"text"`
	Speech string `json:"speech"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_eras",
		Description: "List the historical eras with their regions",
	}, s.handleListEras)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_era",
		Description: "Get an era expanded into its regions, with descriptions and facts",
	}, s.handleGetEra)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_region",
		Description: "Run the NLWEB text analysis on a region's description: entity markup, readability, key phrases, sentiment and related regions",
	}, s.handleAnalyzeRegion)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "narrate_region",
		Description: "Narrate a region as an immersive passage, with a copy prepared for speech engines",
	}, s.handleNarrateRegion)
}

func (s *Server) handleListEras(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListErasInput,
) (*mcp.CallToolResult, ListErasOutput, error) {
	eras, err := s.eras.ListEras(ctx)
	if err != nil {
		return nil, ListErasOutput{}, err
	}

	out := ListErasOutput{Eras: make([]EraInfo, len(eras)), Count: len(eras)}
	for i, e := range eras {
		out.Eras[i] = EraInfo{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Regions:     e.RegionNames,
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetEra(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EraInput,
) (*mcp.CallToolResult, era.World, error) {
	cat, err := s.catalog(ctx, input.EraID)
	if err != nil {
		return nil, era.World{}, err
	}
	world, err := cat.World(input.EraID)
	return nil, world, err
}

func (s *Server) handleAnalyzeRegion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RegionInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	cat, err := s.catalog(ctx, input.EraID)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	region, actx, err := analysis.RegionContext(cat, input.EraID, input.RegionID)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	res := s.processor.Analyze(region.Description, actx)
	metrics := s.processor.Metrics(region.Description)
	s.logger.Debug("Region analysed over MCP", "era_id", input.EraID, "region_id", input.RegionID)

	return nil, AnalyzeOutput{
		Region:           region.Name,
		EnrichedText:     res.EnrichedText,
		HTML:             analysis.RenderHTML(res.EnrichedText),
		ReadabilityScore: res.ReadabilityScore,
		Sentiment:        string(res.Sentiment),
		KeyPhrases:       res.KeyPhrases,
		RelatedRegions:   res.ContextualLinks,
		Sentences:        metrics.Sentences,
		Words:            metrics.Words,
	}, nil
}

func (s *Server) handleNarrateRegion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NarrateInput,
) (*mcp.CallToolResult, NarrateOutput, error) {
	cat, err := s.catalog(ctx, input.EraID)
	if err != nil {
		return nil, NarrateOutput{}, err
	}
	region, err := cat.Region(input.EraID, input.RegionID)
	if err != nil {
		return nil, NarrateOutput{}, err
	}

	builder := s.builder
	if input.Seed != nil {
		builder = narration.NewBuilder(narration.NewRand(*input.Seed))
	}
	text := builder.Build(region.Name, region.Description)

	return nil, NarrateOutput{
		Region: region.Name,
		Text:   text,
		Speech: narration.PrepareForSpeech(text),
	}, nil
}
