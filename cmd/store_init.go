package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/daytrip-labs/travel-cli/internal/cost"
	"github.com/daytrip-labs/travel-cli/internal/store"
)

// openStore opens the run-history store, or returns nil when persistence
// is disabled or unavailable. A recommendation run never fails because
// its history cannot be written.
func openStore(ctx context.Context) store.Store {
	if cfg.Store.Path == "" {
		zap.L().Debug("store.path empty, run history disabled")
		return nil
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		zap.L().Warn("run history store unavailable", zap.Error(err))
		return nil
	}
	if err := st.Migrate(ctx); err != nil {
		zap.L().Warn("run history store migration failed", zap.Error(err))
		_ = st.Close()
		return nil
	}
	return st
}

// initRunsStore opens the run-history store for inspection commands.
// Unlike openStore, a missing or broken store is an error here: there is
// no history to fall back to.
func initRunsStore(ctx context.Context) (store.Store, error) {
	if cfg.Store.Path == "" {
		return nil, eris.New("runs: store.path is required")
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// newCostCalculator builds the cost calculator, preferring the configured
// rates file over the built-in table.
func newCostCalculator() *cost.Calculator {
	if cfg.Cost.RatesPath == "" {
		return cost.NewCalculator(cost.DefaultRates())
	}

	rates, err := cost.LoadRates(cfg.Cost.RatesPath)
	if err != nil {
		zap.L().Warn("cost rates file not loaded, using built-in rates", zap.Error(err))
		return cost.NewCalculator(cost.DefaultRates())
	}
	return cost.NewCalculator(rates)
}
