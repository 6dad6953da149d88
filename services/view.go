package services

import (
	"strings"

	"golf-atlas/models"
)

// ViewState is the user's current query. Commands return a new state and
// never touch the course set.
type ViewState struct {
	Query      string `json:"query"`
	Top100Only bool   `json:"top100_only"`
}

// WithSearch sets the search term.
func (v ViewState) WithSearch(term string) ViewState {
	v.Query = strings.TrimSpace(term)
	return v
}

// WithTop100 switches the Top-100 filter.
func (v ViewState) WithTop100(on bool) ViewState {
	v.Top100Only = on
	return v
}

// Cleared drops the search term and keeps the toggle.
func (v ViewState) Cleared() ViewState {
	v.Query = ""
	return v
}

// View is the projection of a snapshot under a ViewState.
type View struct {
	SnapshotID string           `json:"snapshot_id"`
	State      ViewState        `json:"state"`
	Total      int              `json:"total"`
	Showing    int              `json:"showing"`
	Markers    []MarkerView     `json:"markers"`
	Bounds     *Bounds          `json:"bounds,omitempty"`
	Status     string           `json:"status"`
	Courses    []*models.Course `json:"-"`
}

// Render computes the filtered set for state and its map projection.
func Render(snap *models.Snapshot, state ViewState) View {
	filtered := ApplyFilter(snap.Courses, state.Query, state.Top100Only)
	v := View{
		SnapshotID: snap.ID,
		State:      state,
		Total:      len(snap.Courses),
		Showing:    len(filtered),
		Markers:    Markers(filtered),
		Status:     StatusLine(snap.Stats, len(filtered), state.Top100Only),
		Courses:    filtered,
	}
	if b, ok := BoundsOf(filtered); ok {
		v.Bounds = &b
	}
	return v
}
