package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/daytrip-labs/travel-cli/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start webhook server for recommendation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var runMu sync.Mutex
		mux := buildMux(ctx, env.Pipeline, &runMu)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			zap.L().Info("shutting down server")
			return srv.Shutdown(context.Background())
		})

		return g.Wait()
	},
}

// buildMux assembles the HTTP routes. The pipeline may be nil in tests;
// the webhook then accepts the request without starting a run.
func buildMux(ctx context.Context, p *pipeline.Pipeline, runMu *sync.Mutex) *http.ServeMux {
	if runMu == nil {
		runMu = &sync.Mutex{}
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /webhook/recommend", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Region string `json:"region"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Region) == "" {
			http.Error(w, `{"error":"region is required"}`, http.StatusBadRequest)
			return
		}

		// Run asynchronously. All runs share one browser session, so
		// they serialize on the mutex.
		go func() {
			runMu.Lock()
			defer runMu.Unlock()
			if p == nil {
				return
			}
			rep, err := p.Run(ctx, req.Region)
			if err != nil {
				zap.L().Error("webhook recommendation failed",
					zap.String("region", req.Region),
					zap.Error(err),
				)
				return
			}
			zap.L().Info("webhook recommendation complete",
				zap.String("region", req.Region),
				zap.String("run_id", rep.RunID),
				zap.Int("destinations", len(rep.Destinations)),
				zap.Int("reviews", rep.ReviewCount()),
			)
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "accepted",
			"region": req.Region,
		})
	})

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
