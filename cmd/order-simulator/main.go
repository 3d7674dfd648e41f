package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/nuts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/config"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/nuts-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/nuts-storefront/internal/services"
	"github.com/aaravmahajanofficial/nuts-storefront/internal/telemetry"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const jobName = "order_simulator"

// One progression pass per invocation; the scheduler decides the cadence.
func main() {
	os.Exit(run())
}

func run() int {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("job", jobName),
		slog.String("runID", uuid.NewString()),
	)
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = middleware.WithLogger(ctx, logger)

	shutdownTracer, err := telemetry.InitTracer(ctx, &cfg.Otel)
	if err != nil {
		logger.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		return 1
	}

	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
		}
	}()

	repos, err := repository.New(ctx, cfg)
	if err != nil {
		logger.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		return 1
	}

	defer func() {
		if err := repos.Close(); err != nil {
			logger.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	progression := service.NewProgressionService(
		repos.Orders,
		repos.Payments,
		repos.Locks,
		repos.Transactor,
		service.NewRandomOutcomes(cfg.Simulator.SuccessRatio),
		cfg.Simulator.LockKey,
	)

	code := progress(ctx, progression)
	pushMetrics(cfg.Simulator.PushgatewayURL, logger)

	return code
}

// progress runs one pass and maps its outcome to an exit code. A pass skipped because
// another run holds the lock is not a failure.
func progress(ctx context.Context, progression service.ProgressionService) int {

	report, err := progression.Run(ctx)
	skipped := errors.Is(err, service.ErrProgressionInProgress)
	metrics.RecordProgression(report, skipped)

	if err != nil && !skipped {
		return 1
	}

	return 0
}

func pushMetrics(url string, logger *slog.Logger) {
	if url == "" {
		return
	}

	if err := push.New(url, jobName).Gatherer(prometheus.DefaultGatherer).Push(); err != nil {
		logger.Warn("Failed to push metrics", slog.String("url", url), slog.String("error", err.Error()))
	}
}
