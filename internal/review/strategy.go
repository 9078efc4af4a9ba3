// Package review extracts visitor reviews from Naver place pages through
// a tiered cascade of extraction strategies.
package review

import (
	"context"

	"github.com/daytrip-labs/travel-cli/internal/browser"
	"github.com/daytrip-labs/travel-cli/internal/model"
)

// Strategy names, in cascade order.
const (
	StrategyStructured = "structured_selectors"
	StrategyReviewList = "review_list_pattern"
	StrategyHeuristic  = "full_page_heuristic"
)

// Result holds extracted reviews with the strategy that produced them.
type Result struct {
	Reviews  model.ReviewSet
	Strategy string // e.g. "structured_selectors"
}

// Strategy extracts candidate review texts from the session's current
// scope. Implementations stop collecting at max and report finding
// nothing as an empty slice, not an error.
type Strategy interface {
	Extract(ctx context.Context, sess browser.Session, max int) ([]string, error)
	Name() string
}
