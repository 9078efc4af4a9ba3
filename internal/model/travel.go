package model

import "time"

// ReviewSet is an ordered collection of review snippets for one
// destination. Invariants: no two elements are byte-equal, and the length
// never exceeds the configured maximum. Order is discovery order within
// the extraction strategy that produced the snippets.
type ReviewSet []string

// PlaceReference points at a resolved place-detail page. The URL always
// targets the reviews sub-view. A zero URL means resolution found no place
// page for the query — a normal outcome, not an error.
type PlaceReference struct {
	URL           string `json:"url"`
	HasReviewView bool   `json:"has_review_view"`
}

// Found reports whether resolution produced a place page.
func (p PlaceReference) Found() bool { return p.URL != "" }

// TokenUsage tracks token consumption across model calls.
type TokenUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Add accumulates another usage into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Total returns the combined token count.
func (u TokenUsage) Total() int64 {
	return u.InputTokens + u.OutputTokens
}

// Recommendation is the final result for a single destination.
type Recommendation struct {
	Destination  string     `json:"destination"`
	PlaceURL     string     `json:"place_url,omitempty"`
	Reviews      ReviewSet  `json:"reviews"`
	Strategy     string     `json:"strategy,omitempty"` // extraction strategy that produced the reviews
	Summary      string     `json:"summary"`
	FromFallback bool       `json:"from_fallback"` // summary came from a deterministic fallback, not the model
	TokenUsage   TokenUsage `json:"token_usage"`
	Duration     int64      `json:"duration_ms"`
}

// RegionReport is the full outcome of one region run.
type RegionReport struct {
	RunID           string           `json:"run_id"`
	Region          string           `json:"region"`
	Destinations    []string         `json:"destinations"`
	PlannerFallback bool             `json:"planner_fallback"` // destination list came from the fallback table
	Recommendations []Recommendation `json:"recommendations"`
	TotalUsage      TokenUsage       `json:"total_usage"`
	TotalCost       float64          `json:"total_cost_usd"`
	StartedAt       time.Time        `json:"started_at"`
	FinishedAt      time.Time        `json:"finished_at"`
}

// ReviewCount sums collected reviews across all destinations.
func (r *RegionReport) ReviewCount() int {
	n := 0
	for _, rec := range r.Recommendations {
		n += len(rec.Reviews)
	}
	return n
}
