package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yarberjoseph/seo-analyst-agent/internal/analyzer"
	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
	"github.com/yarberjoseph/seo-analyst-agent/internal/session"
	"github.com/yarberjoseph/seo-analyst-agent/pkg/dataforseo"
)

var servePort int

// historyLimit caps how many past analyses the dashboard sidebar shows.
const historyLimit = 5

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a := initAnalyzer()
		store := session.NewStore()

		router := newRouter(a.Run, store)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// runFunc is the analysis entry point the handlers call; injected so the
// routes can be tested without network access.
type runFunc func(ctx context.Context, req model.AnalysisRequest, progress analyzer.ProgressFunc) (*model.AnalysisResult, error)

// newRouter builds the dashboard API routes.
func newRouter(run runFunc, store *session.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/analyses", func(w http.ResponseWriter, req *http.Request) {
		var body model.AnalysisRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if err := body.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		progress := func(stage string, percent int) {
			zap.L().Info("analysis progress",
				zap.String("keyword", body.Keyword),
				zap.String("stage", stage),
				zap.Int("percent", percent),
			)
		}

		result, err := run(req.Context(), body, progress)
		if err != nil {
			zap.L().Error("analysis failed",
				zap.String("keyword", body.Keyword),
				zap.Error(err),
			)
			writeJSON(w, statusForRunError(err), map[string]string{"error": err.Error()})
			return
		}

		store.Append(*result)
		writeJSON(w, http.StatusCreated, result)
	})

	r.Get("/api/analyses", func(w http.ResponseWriter, _ *http.Request) {
		results := store.Last(historyLimit)
		if results == nil {
			results = []model.AnalysisResult{}
		}
		writeJSON(w, http.StatusOK, results)
	})

	r.Get("/api/analyses/latest", func(w http.ResponseWriter, _ *http.Request) {
		result, ok := store.Latest()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no analyses yet"})
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/api/analyses/{id}/report", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		result, ok := store.Get(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "analysis not found"})
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", analyzer.ReportFilename(result)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(analyzer.FormatReport(result)))
	})

	return r
}

// statusForRunError maps a failed run to an HTTP status. A missing server
// credential is our misconfiguration; model-call failures, provider
// rejections, and transport errors are all upstream failures.
func statusForRunError(err error) int {
	switch {
	case errors.Is(err, model.ErrMissingCredentials):
		return http.StatusInternalServerError
	case analyzer.IsModelCallFailure(err), dataforseo.IsProviderRejection(err):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
