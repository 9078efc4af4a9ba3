// Package pipeline orchestrates a region run: plan destinations, then
// for each destination resolve its Naver place page, harvest reviews,
// and generate a recommendation. Stages run sequentially because they
// share one browser session; per-destination failures degrade that
// destination instead of killing the run.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/daytrip-labs/travel-cli/internal/browser"
	"github.com/daytrip-labs/travel-cli/internal/config"
	"github.com/daytrip-labs/travel-cli/internal/cost"
	"github.com/daytrip-labs/travel-cli/internal/model"
	"github.com/daytrip-labs/travel-cli/internal/review"
	"github.com/daytrip-labs/travel-cli/internal/store"
)

// Planner proposes destination names for a region.
type Planner interface {
	Plan(ctx context.Context, region string) ([]string, model.TokenUsage, bool)
}

// Summarizer writes the per-destination recommendation text.
type Summarizer interface {
	Summarize(ctx context.Context, destination string, reviews model.ReviewSet) (string, model.TokenUsage, bool)
}

// Resolver finds the Naver place page for a destination.
type Resolver interface {
	Resolve(ctx context.Context, sess browser.Session, destination, region string) (model.PlaceReference, error)
}

// Extractor harvests reviews from a resolved place page.
type Extractor interface {
	Extract(ctx context.Context, sess browser.Session, placeURL string, max int) (*review.Result, error)
}

// Pipeline runs the full region flow over one browser session.
type Pipeline struct {
	cfg        *config.Config
	session    browser.Session
	store      store.Store
	planner    Planner
	summarizer Summarizer
	resolver   Resolver
	extractor  Extractor
	costCalc   *cost.Calculator
	limiter    *rate.Limiter
}

// New creates a Pipeline. The session is borrowed, not owned: the
// caller opens it before the run and closes it after. A nil store
// disables run history; a nil calculator falls back to built-in rates.
func New(
	cfg *config.Config,
	session browser.Session,
	st store.Store,
	costCalc *cost.Calculator,
	planner Planner,
	summarizer Summarizer,
	resolver Resolver,
	extractor Extractor,
) *Pipeline {
	if costCalc == nil {
		costCalc = cost.NewCalculator(cost.DefaultRates())
	}
	var limiter *rate.Limiter
	if delay := time.Duration(cfg.Pipeline.DestinationDelaySecs) * time.Second; delay > 0 {
		// Burst 1 lets the first destination start immediately and
		// spaces the rest, which is politer to the target site than a
		// flat sleep after every visit.
		limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
	return &Pipeline{
		cfg:        cfg,
		session:    session,
		store:      st,
		planner:    planner,
		summarizer: summarizer,
		resolver:   resolver,
		extractor:  extractor,
		costCalc:   costCalc,
		limiter:    limiter,
	}
}

// Run executes the full flow for one region and returns the report.
// The report is also returned alongside a non-nil error when the run
// is cancelled midway, carrying whatever completed before the cut.
func (p *Pipeline) Run(ctx context.Context, region string) (*model.RegionReport, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return nil, eris.New("pipeline: region must not be empty")
	}

	log := zap.L().With(zap.String("region", region))
	log.Info("pipeline: starting region run")

	report := &model.RegionReport{
		RunID:     uuid.NewString(),
		Region:    region,
		StartedAt: time.Now().UTC(),
	}

	names, usage, fromFallback := p.planner.Plan(ctx, region)
	report.Destinations = names
	report.PlannerFallback = fromFallback
	report.TotalUsage.Add(usage)

	for i, destination := range names {
		if p.limiter != nil {
			if err := p.limiter.Wait(ctx); err != nil {
				return p.finalize(ctx, report, log), eris.Wrap(err, "pipeline: wait for harvest slot")
			}
		}

		rec, err := p.harvestDestination(ctx, destination, region, log.With(
			zap.String("destination", destination),
			zap.Int("ordinal", i+1),
		))
		report.TotalUsage.Add(rec.TokenUsage)
		if err != nil {
			return p.finalize(ctx, report, log), eris.Wrap(err, "pipeline: run cancelled")
		}
		report.Recommendations = append(report.Recommendations, rec)
	}

	return p.finalize(ctx, report, log), nil
}

// harvestDestination runs resolve, extract, and summarize for one
// destination. Stage failures are logged and degrade the result; only
// context cancellation returns an error.
func (p *Pipeline) harvestDestination(ctx context.Context, destination, region string, log *zap.Logger) (model.Recommendation, error) {
	start := time.Now()
	rec := model.Recommendation{
		Destination: destination,
		Reviews:     model.ReviewSet{},
	}

	ref, err := p.resolver.Resolve(ctx, p.session, destination, region)
	switch {
	case err != nil:
		if ctx.Err() != nil {
			return rec, ctx.Err()
		}
		log.Error("pipeline: place resolution failed", zap.Error(err))
	case !ref.Found():
		log.Warn("pipeline: no place found")
	default:
		rec.PlaceURL = ref.URL
		result, exErr := p.extractor.Extract(ctx, p.session, ref.URL, p.cfg.Review.MaxReviews)
		if exErr != nil {
			if ctx.Err() != nil {
				return rec, ctx.Err()
			}
			log.Error("pipeline: review extraction failed", zap.Error(exErr))
		} else if result != nil {
			rec.Reviews = result.Reviews
			rec.Strategy = result.Strategy
		}
	}

	if ctx.Err() != nil {
		return rec, ctx.Err()
	}

	rec.Summary, rec.TokenUsage, rec.FromFallback = p.summarizer.Summarize(ctx, destination, rec.Reviews)
	rec.Duration = time.Since(start).Milliseconds()

	log.Info("pipeline: destination complete",
		zap.Int("reviews", len(rec.Reviews)),
		zap.String("strategy", rec.Strategy),
		zap.Bool("fallback_summary", rec.FromFallback),
		zap.Int64("duration_ms", rec.Duration),
	)
	return rec, nil
}

func (p *Pipeline) finalize(ctx context.Context, report *model.RegionReport, log *zap.Logger) *model.RegionReport {
	report.TotalCost = p.costCalc.Claude(
		p.cfg.Anthropic.Model,
		report.TotalUsage.InputTokens,
		report.TotalUsage.OutputTokens,
	)
	report.FinishedAt = time.Now().UTC()

	if p.store != nil {
		if err := p.store.SaveReport(ctx, report); err != nil {
			log.Warn("pipeline: failed to save run report", zap.Error(err))
		}
	}

	log.Info("pipeline: region run complete",
		zap.String("run_id", report.RunID),
		zap.Int("destinations", len(report.Destinations)),
		zap.Int("recommendations", len(report.Recommendations)),
		zap.Int("reviews", report.ReviewCount()),
		zap.Int64("tokens", report.TotalUsage.Total()),
		zap.Float64("cost_usd", report.TotalCost),
	)
	return report
}
