package review

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/daytrip-labs/travel-cli/internal/browser"
)

// structuredSelectors target the review text nodes in the place page's
// current markup. Naver rotates these obfuscated class names; when tier 1
// stops producing, refresh them from the live page.
var structuredSelectors = []string{
	".zPfVt",
	".YEtwtZFlx",
	"span.Wzv5Z90S4",
}

// structuredStrategy reads review text straight from known selectors.
type structuredStrategy struct{}

func (s *structuredStrategy) Name() string { return StrategyStructured }

func (s *structuredStrategy) Extract(ctx context.Context, sess browser.Session, max int) ([]string, error) {
	for _, selector := range structuredSelectors {
		texts, err := sess.ElementTexts(ctx, selector)
		if err != nil {
			return nil, err
		}

		snippets := make([]string, 0, len(texts))
		for _, t := range texts {
			t = strings.TrimSpace(t)
			if utf8.RuneCountInString(t) <= minStructuredRunes {
				continue
			}
			snippets = append(snippets, t)
			if max > 0 && len(snippets) >= max {
				break
			}
		}

		// A selector that matched nodes but yielded nothing usable was
		// the wrong one for this markup; let the next selector try.
		if len(snippets) > 0 {
			return snippets, nil
		}
	}
	return nil, nil
}
