package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/daytrip-labs/travel-cli/internal/browser"
	"github.com/daytrip-labs/travel-cli/internal/pipeline"
	"github.com/daytrip-labs/travel-cli/internal/place"
	"github.com/daytrip-labs/travel-cli/internal/recommend"
	"github.com/daytrip-labs/travel-cli/internal/review"
	"github.com/daytrip-labs/travel-cli/internal/store"
	"github.com/daytrip-labs/travel-cli/pkg/claude"
)

// runEnv holds the browser session, run-history store, and the wired
// pipeline shared by the run, recommend, and serve commands.
type runEnv struct {
	Session  browser.Session
	Store    store.Store // may be nil
	Pipeline *pipeline.Pipeline
}

// Close releases the browser session and the store.
func (re *runEnv) Close() {
	if re.Session != nil {
		if err := re.Session.Close(); err != nil {
			zap.L().Warn("browser close failed", zap.Error(err))
		}
	}
	if re.Store != nil {
		_ = re.Store.Close()
	}
}

// initPipeline opens the browser session and wires every pipeline
// dependency from the loaded config. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*runEnv, error) {
	session, err := browser.Open(browser.Config{
		Headless:     cfg.Browser.Headless,
		BinPath:      cfg.Browser.BinPath,
		WindowWidth:  cfg.Browser.WindowWidth,
		WindowHeight: cfg.Browser.WindowHeight,
		UserAgent:    cfg.Browser.UserAgent,
		PageTimeout:  time.Duration(cfg.Browser.PageTimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	st := openStore(ctx)

	claudeClient := claude.NewClient(cfg.Anthropic.Key)
	recommendCfg := recommend.Config{
		Model:           cfg.Anthropic.Model,
		MaxTokens:       int64(cfg.Anthropic.MaxTokens),
		MaxAttempts:     cfg.Anthropic.MaxAttempts,
		MaxDestinations: cfg.Pipeline.MaxDestinations,
	}

	resolver := place.NewResolver(place.Config{
		BaseURL:     cfg.Search.BaseURL,
		SettleDelay: time.Duration(cfg.Search.SettleDelaySecs) * time.Second,
	})
	extractor := review.NewExtractor(review.Config{
		FrameID:   cfg.Review.FrameID,
		FrameWait: time.Duration(cfg.Review.FrameWaitSecs) * time.Second,
	})

	p := pipeline.New(
		cfg,
		session,
		st,
		newCostCalculator(),
		recommend.NewPlanner(claudeClient, recommendCfg),
		recommend.NewSummarizer(claudeClient, recommendCfg),
		resolver,
		extractor,
	)

	return &runEnv{Session: session, Store: st, Pipeline: p}, nil
}
