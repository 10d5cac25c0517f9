package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/jwebster45206/chronicle/pkg/analysis"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/narration"
	"github.com/jwebster45206/chronicle/pkg/storage"
)

const erasPrefix = "/v1/eras"

// EraSummary is one entry of the era list.
type EraSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RegionCount int    `json:"region_count"`
}

// RegionResponse is a region with the card details shown before it is expanded.
type RegionResponse struct {
	era.Region
	Preview   string `json:"preview"`
	WordCount int    `json:"word_count"`
}

// AnalysisResponse is the analysis of one region's description.
type AnalysisResponse struct {
	EraID    string `json:"era_id"`
	RegionID string `json:"region_id"`
	analysis.Result
	HTML      string `json:"html"`
	Sentences int    `json:"sentences"`
	Words     int    `json:"words"`
}

// NarrationResponse is a narrated passage for one region.
type NarrationResponse struct {
	EraID    string  `json:"era_id"`
	RegionID string  `json:"region_id"`
	Text     string  `json:"text"`
	Speech   string  `json:"speech"`
	Seed     *uint64 `json:"seed,omitempty"`
}

type ErasHandler struct {
	storage   storage.Storage
	describer era.Describer
	processor *analysis.Processor
	builder   *narration.Builder
	logger    *slog.Logger
	upgrader  websocket.Upgrader
	origins   map[string]bool
}

// NewErasHandler serves eras, regions and their analyses and narrations.
// Narrations without an explicit seed draw from builder.
func NewErasHandler(storage storage.Storage, describer era.Describer, processor *analysis.Processor, builder *narration.Builder, logger *slog.Logger) *ErasHandler {
	if describer == nil {
		describer = era.DefaultDescriber
	}
	h := &ErasHandler{
		storage:   storage,
		describer: describer,
		processor: processor,
		builder:   builder,
		logger:    logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// ServeHTTP handles read-only era requests
// Routes:
// GET /v1/eras                                        - List eras
// GET /v1/eras/{era}                                  - Era expanded into a world
// GET /v1/eras/{era}/regions                          - Region cards of an era
// GET /v1/eras/{era}/regions/{region}                 - One region
// GET /v1/eras/{era}/regions/{region}/analysis        - Text analysis of a region
// GET /v1/eras/{era}/regions/{region}/narration?seed= - Narration of a region
// GET /v1/eras/{era}/regions/{region}/narration/stream?seed=&wpm=
//                                                     - Narration streamed word by word over a websocket
func (h *ErasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for eras endpoint", "method", r.Method)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	segments := pathSegments(r.URL.Path, erasPrefix)
	for _, s := range segments {
		if !validID(s) {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid id in path: "+s)
			return
		}
	}

	switch {
	case len(segments) == 0:
		h.handleList(w, r)
	case len(segments) == 1:
		h.handleWorld(w, r, segments[0])
	case len(segments) >= 2 && segments[1] != "regions":
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	case len(segments) == 2:
		h.handleRegions(w, r, segments[0])
	case len(segments) == 3:
		h.handleRegion(w, r, segments[0], segments[2])
	case len(segments) == 4 && segments[3] == "analysis":
		h.handleAnalysis(w, r, segments[0], segments[2])
	case len(segments) == 4 && segments[3] == "narration":
		h.handleNarration(w, r, segments[0], segments[2])
	case len(segments) == 5 && segments[3] == "narration" && segments[4] == "stream":
		h.handleNarrationStream(w, r, segments[0], segments[2])
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

// validID reports whether s is already a kebab-case slug.
func validID(s string) bool {
	return s != "" && era.RegionID(s) == s
}

func (h *ErasHandler) handleList(w http.ResponseWriter, r *http.Request) {
	eras, err := h.storage.ListEras(r.Context())
	if err != nil {
		h.logger.Error("Failed to list eras", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list eras")
		return
	}

	summaries := make([]EraSummary, 0, len(eras))
	for _, e := range eras {
		summaries = append(summaries, EraSummary{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			RegionCount: len(e.RegionNames),
		})
	}
	writeJSON(w, h.logger, http.StatusOK, summaries)
}

// catalog loads one era and indexes it. It writes the error response and
// returns nil when the era cannot be served.
func (h *ErasHandler) catalog(w http.ResponseWriter, r *http.Request, eraID string) *era.Catalog {
	e, err := h.storage.GetEra(r.Context(), eraID)
	if err != nil {
		h.logger.Error("Failed to load era", "era_id", eraID, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load era")
		return nil
	}
	if e == nil {
		writeError(w, h.logger, http.StatusNotFound, "Era not found: "+eraID)
		return nil
	}
	return era.NewCatalog([]era.Era{*e}, h.describer)
}

func (h *ErasHandler) handleWorld(w http.ResponseWriter, r *http.Request, eraID string) {
	cat := h.catalog(w, r, eraID)
	if cat == nil {
		return
	}
	world, _ := cat.World(eraID)
	writeJSON(w, h.logger, http.StatusOK, world)
}

func (h *ErasHandler) handleRegions(w http.ResponseWriter, r *http.Request, eraID string) {
	cat := h.catalog(w, r, eraID)
	if cat == nil {
		return
	}
	regions := cat.RegionsByEra(eraID)
	out := make([]RegionResponse, 0, len(regions))
	for _, region := range regions {
		out = append(out, newRegionResponse(region))
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

func newRegionResponse(region era.Region) RegionResponse {
	return RegionResponse{
		Region:    region,
		Preview:   era.Preview(region.Description),
		WordCount: era.WordCount(region.Description),
	}
}

// region resolves a region and its analysis context, writing the error
// response when it cannot.
func (h *ErasHandler) region(w http.ResponseWriter, r *http.Request, eraID, regionID string) (era.Region, analysis.Context, bool) {
	cat := h.catalog(w, r, eraID)
	if cat == nil {
		return era.Region{}, analysis.Context{}, false
	}
	region, ctx, err := analysis.RegionContext(cat, eraID, regionID)
	if err != nil {
		if errors.Is(err, era.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "Region not found: "+regionID)
		} else {
			h.logger.Error("Failed to resolve region", "era_id", eraID, "region_id", regionID, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to resolve region")
		}
		return era.Region{}, analysis.Context{}, false
	}
	return region, ctx, true
}

func (h *ErasHandler) handleRegion(w http.ResponseWriter, r *http.Request, eraID, regionID string) {
	region, _, ok := h.region(w, r, eraID, regionID)
	if !ok {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, newRegionResponse(region))
}

func (h *ErasHandler) handleAnalysis(w http.ResponseWriter, r *http.Request, eraID, regionID string) {
	region, ctx, ok := h.region(w, r, eraID, regionID)
	if !ok {
		return
	}

	result := h.processor.Analyze(region.Description, ctx)
	metrics := h.processor.Metrics(region.Description)
	h.logger.Debug("Region analysed",
		"era_id", eraID,
		"region_id", regionID,
		"readability", result.ReadabilityScore,
		"key_phrases", len(result.KeyPhrases),
		"links", len(result.ContextualLinks))

	writeJSON(w, h.logger, http.StatusOK, AnalysisResponse{
		EraID:     eraID,
		RegionID:  regionID,
		Result:    result,
		HTML:      analysis.RenderHTML(result.EnrichedText),
		Sentences: metrics.Sentences,
		Words:     metrics.Words,
	})
}

func (h *ErasHandler) handleNarration(w http.ResponseWriter, r *http.Request, eraID, regionID string) {
	resp, ok := h.narrate(w, r, eraID, regionID)
	if !ok {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// narrate builds a region's narration, honouring an optional seed query
// parameter. It writes the error response when it cannot.
func (h *ErasHandler) narrate(w http.ResponseWriter, r *http.Request, eraID, regionID string) (NarrationResponse, bool) {
	builder := h.builder
	var seed *uint64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "seed must be a non-negative integer")
			return NarrationResponse{}, false
		}
		seed = &v
		builder = narration.NewBuilder(narration.NewRand(v))
	}

	region, _, ok := h.region(w, r, eraID, regionID)
	if !ok {
		return NarrationResponse{}, false
	}

	text := builder.Build(region.Name, region.Description)
	return NarrationResponse{
		EraID:    eraID,
		RegionID: regionID,
		Text:     text,
		Speech:   narration.PrepareForSpeech(text),
		Seed:     seed,
	}, true
}
