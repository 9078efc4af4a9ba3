package review

import (
	"context"
	"strings"

	"github.com/daytrip-labs/travel-cli/internal/browser"
)

// heuristicStrategy scans every text-bearing node on the page and keeps
// short review-like passages. Last resort for when the review markup has
// rotated away entirely.
type heuristicStrategy struct{}

func (s *heuristicStrategy) Name() string { return StrategyHeuristic }

func (s *heuristicStrategy) Extract(ctx context.Context, sess browser.Session, max int) ([]string, error) {
	texts, err := sess.TextNodes(ctx)
	if err != nil {
		return nil, err
	}

	snippets := make([]string, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if !acceptHeuristic(t) {
			continue
		}
		snippets = append(snippets, t)
		if max > 0 && len(snippets) >= max {
			break
		}
	}
	return snippets, nil
}
