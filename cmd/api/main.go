package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kilo9alfa/workouttracker/internal/api"
	"github.com/kilo9alfa/workouttracker/internal/auth"
	"github.com/kilo9alfa/workouttracker/internal/config"
	"github.com/kilo9alfa/workouttracker/internal/domain"
	"github.com/kilo9alfa/workouttracker/internal/events"
	"github.com/kilo9alfa/workouttracker/internal/outbox"
	persistence "github.com/kilo9alfa/workouttracker/internal/persistence/postgres"
	httptransport "github.com/kilo9alfa/workouttracker/internal/transport/http"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	repo := persistence.NewRepository(pool)
	service := domain.NewService(repo)

	producer := outbox.NewKafkaProducer(cfg.KafkaBrokers, events.TopicWorkoutEvents)
	defer producer.Close()

	dispatcher := outbox.NewDispatcher(pool, producer, logger, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
	go dispatcher.Start(ctx)

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/workout", api.NewAssetHandler(os.DirFS(cfg.AssetsDir)))
	mux.Handle("/workout/", api.NewAssetHandler(os.DirFS(cfg.AssetsDir)))

	authMiddleware := auth.NewMiddleware(func(r *http.Request) bool {
		// Only the API prefix requires identity; assets, health and
		// metrics are open. CORS preflights carry no identity headers.
		return !isAPIPath(r.URL.Path) || r.Method == http.MethodOptions
	})

	chain := authMiddleware.Wrap(api.RequestLogger(logger)(api.CORS(mux)))

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, chain)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("workout tracker listening", zap.String("address", cfg.HTTPAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}

	dispatcher.Wait()
}

func isAPIPath(path string) bool {
	const prefix = "/workout/api/"
	return len(path) >= len(prefix) && path[:len(prefix)] == prefix
}
