package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opentutor/knowledge-service/internal/bootstrap"
	"github.com/opentutor/knowledge-service/internal/config"
	"github.com/opentutor/knowledge-service/internal/observability/logging"
	"github.com/opentutor/knowledge-service/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: metricsHandler(workerMetrics),
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeIndexRequested(ctx, func(handlerCtx context.Context, documentID string) error {
		buildCtx, cancel := context.WithTimeout(handlerCtx, cfg.BuildTimeout)
		defer cancel()

		workerMetrics.StartBuild()
		start := time.Now()

		if doc, getErr := app.Repo.GetByID(buildCtx, documentID); getErr == nil {
			workerMetrics.ObserveQueueLag("worker", time.Since(doc.UpdatedAt))
		}

		report, buildErr := app.BuildUC.BuildByID(buildCtx, documentID)

		pageCount := 0
		summaryFallbacks := 0
		if report != nil && report.Index != nil {
			pageCount = report.Index.PageCount
			summaryFallbacks = report.SummaryFallbacks()
		}
		workerMetrics.FinishBuild("worker", time.Since(start), pageCount, summaryFallbacks, buildErr)

		if buildErr != nil {
			return buildErr
		}
		slog.Info("index_built",
			"document_id", documentID,
			"pages", pageCount,
			"warnings", len(report.Warnings),
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		)
		return nil
	})
	if err != nil {
		slog.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}

func metricsHandler(m *metrics.WorkerMetrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
