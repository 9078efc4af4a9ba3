package review

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/daytrip-labs/travel-cli/internal/browser"
	"github.com/daytrip-labs/travel-cli/internal/model"
)

// Config holds extraction settings.
type Config struct {
	FrameID   string        // review content frame element id
	FrameWait time.Duration // how long to wait for the frame
}

// Extractor runs the strategy cascade inside the review content frame.
// Strategies are tried in order; the first one producing at least one
// snippet wins and later tiers are never invoked.
type Extractor struct {
	cfg        Config
	strategies []Strategy
}

// NewExtractor creates an Extractor. With no explicit strategies it runs
// the default cascade: structured selectors, review-list pattern,
// full-page heuristic.
func NewExtractor(cfg Config, strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = []Strategy{
			&structuredStrategy{},
			&reviewListStrategy{},
			&heuristicStrategy{},
		}
	}
	return &Extractor{cfg: cfg, strategies: strategies}
}

// Extract navigates to the place review page and runs the cascade. A
// missing review frame yields an empty result, not an error; only
// failing to reach the page at all surfaces as an error.
func (e *Extractor) Extract(ctx context.Context, sess browser.Session, placeURL string, max int) (*Result, error) {
	// Scope must be back at top level however extraction ends, or the
	// next destination's search would query inside this frame.
	defer sess.ResetScope()

	if err := sess.Navigate(ctx, placeURL); err != nil {
		return nil, eris.Wrap(err, "review: navigate place page")
	}

	if err := sess.EnterFrame(ctx, e.cfg.FrameID, e.cfg.FrameWait); err != nil {
		zap.L().Warn("review frame not found",
			zap.String("frame", e.cfg.FrameID),
			zap.String("url", placeURL),
			zap.Error(err),
		)
		return &Result{Reviews: model.ReviewSet{}}, nil
	}

	for _, s := range e.strategies {
		snippets, err := s.Extract(ctx, sess, max)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			zap.L().Debug("extraction strategy failed, trying next",
				zap.String("strategy", s.Name()),
				zap.Error(err),
			)
			continue
		}
		if len(snippets) == 0 {
			zap.L().Debug("extraction strategy found nothing, trying next",
				zap.String("strategy", s.Name()),
			)
			continue
		}

		reviews := Normalize(snippets, max)
		zap.L().Info("reviews extracted",
			zap.String("strategy", s.Name()),
			zap.Int("count", len(reviews)),
		)
		return &Result{Reviews: reviews, Strategy: s.Name()}, nil
	}

	zap.L().Warn("no strategy extracted reviews", zap.String("url", placeURL))
	return &Result{Reviews: model.ReviewSet{}}, nil
}
