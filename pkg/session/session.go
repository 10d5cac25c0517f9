// Package session holds the explorer's view state: which era is selected,
// which region is expanded, and which region shows its analysis or is
// being narrated. Each of the three region slots holds at most one region.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownAction is returned by Apply for an unrecognised action type.
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidAction is returned by Apply when an action lacks the id it needs.
	ErrInvalidAction = errors.New("invalid action")
)

// Session is one explorer's view state. Empty ids mean "none".
type Session struct {
	ID                uuid.UUID `json:"id"`
	SelectedEraID     string    `json:"selected_era_id"`
	ExpandedRegionID  string    `json:"expanded_region_id,omitempty"`
	AnalysisRegionID  string    `json:"analysis_region_id,omitempty"`
	NarratingRegionID string    `json:"narrating_region_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// New starts a session with firstEraID selected and nothing expanded.
func New(firstEraID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            uuid.New(),
		SelectedEraID: firstEraID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SelectEra switches eras. Every region panel is closed and any narration
// stops.
func (s *Session) SelectEra(eraID string) {
	s.SelectedEraID = eraID
	s.ExpandedRegionID = ""
	s.AnalysisRegionID = ""
	s.NarratingRegionID = ""
}

// ToggleRegion collapses regionID if it is expanded, otherwise expands it.
// Expanding a different region hides the analysis panel; collapsing leaves
// it as it was.
func (s *Session) ToggleRegion(regionID string) {
	if s.ExpandedRegionID == regionID {
		s.ExpandedRegionID = ""
		return
	}
	s.ExpandedRegionID = regionID
	s.AnalysisRegionID = ""
}

// ToggleAnalysis shows the analysis of regionID, or hides it if shown.
func (s *Session) ToggleAnalysis(regionID string) {
	s.AnalysisRegionID = toggle(s.AnalysisRegionID, regionID)
}

// ToggleNarration starts narrating regionID, or stops if it is narrating.
// Starting a narration replaces the one in progress.
func (s *Session) ToggleNarration(regionID string) {
	s.NarratingRegionID = toggle(s.NarratingRegionID, regionID)
}

// AnalysisVisible reports whether the analysis of regionID is on screen:
// its panel is open and the region itself is expanded.
func (s *Session) AnalysisVisible(regionID string) bool {
	return s.ExpandedRegionID == regionID && s.AnalysisRegionID == regionID
}

func toggle(current, id string) string {
	if current == id {
		return ""
	}
	return id
}

// ActionType names a session transition.
type ActionType string

const (
	ActionSelectEra       ActionType = "select_era"
	ActionToggleRegion    ActionType = "toggle_region"
	ActionToggleAnalysis  ActionType = "toggle_analysis"
	ActionToggleNarration ActionType = "toggle_narration"
	ActionStopNarration   ActionType = "stop_narration"
)

// Action is a transition request as sent by clients.
type Action struct {
	Type     ActionType `json:"type"`
	EraID    string     `json:"era_id,omitempty"`
	RegionID string     `json:"region_id,omitempty"`
}

// Apply performs a and stamps UpdatedAt. The session is unchanged when an
// error is returned.
func (s *Session) Apply(a Action) error {
	switch a.Type {
	case ActionSelectEra:
		if a.EraID == "" {
			return fmt.Errorf("%w: %s requires era_id", ErrInvalidAction, a.Type)
		}
		s.SelectEra(a.EraID)
	case ActionToggleRegion, ActionToggleAnalysis, ActionToggleNarration:
		if a.RegionID == "" {
			return fmt.Errorf("%w: %s requires region_id", ErrInvalidAction, a.Type)
		}
		switch a.Type {
		case ActionToggleRegion:
			s.ToggleRegion(a.RegionID)
		case ActionToggleAnalysis:
			s.ToggleAnalysis(a.RegionID)
		default:
			s.ToggleNarration(a.RegionID)
		}
	case ActionStopNarration:
		s.NarratingRegionID = ""
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	s.UpdatedAt = time.Now().UTC()
	return nil
}
