package review

import (
	"context"

	"github.com/daytrip-labs/travel-cli/internal/browser"
)

// reviewListSelector finds collapsed review bodies inside the review
// list. The data-pui-click-code attribute survives Naver's class-name
// rotation, which makes this tier sturdier than tier 1.
const reviewListSelector = `ul#_review_list a[role="button"][data-pui-click-code="rvshowless"]`

// reviewListStrategy extracts review bodies from the review-list markup.
type reviewListStrategy struct{}

func (s *reviewListStrategy) Name() string { return StrategyReviewList }

func (s *reviewListStrategy) Extract(ctx context.Context, sess browser.Session, max int) ([]string, error) {
	markup, err := sess.ElementHTML(ctx, reviewListSelector)
	if err != nil {
		return nil, err
	}

	snippets := make([]string, 0, len(markup))
	for _, m := range markup {
		text := cleanMarkup(m)
		if !acceptExpanded(text) {
			continue
		}
		snippets = append(snippets, text)
		if max > 0 && len(snippets) >= max {
			break
		}
	}
	return snippets, nil
}
