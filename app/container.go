package app

import (
	"fmt"
	"log/slog"

	"tweet-server/confs"
	"tweet-server/db"
	"tweet-server/handlers"
	httpHandler "tweet-server/handlers/http"
	"tweet-server/inference"
	"tweet-server/metrics"
	"tweet-server/repositories"
	"tweet-server/server"
	"tweet-server/usecases"
	"tweet-server/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"
)

// ProvideConfig reads the environment and fails when anything required is missing.
func ProvideConfig() (*confs.Config, error) {
	cfg := confs.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProvideDatabase connects and brings the schema up to date.
func ProvideDatabase(cfg *confs.Config) (db.Database, error) {
	database, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database); err != nil {
		_ = database.Close()
		return nil, err
	}
	slog.Info("database ready", slog.String("driver", cfg.Database.Driver))
	return database, nil
}

func ProvideStorage(database db.Database) repositories.Storage {
	return repositories.NewDatabaseStorage(database)
}

func ProvideInferenceClient(cfg *confs.Config) *inference.Client {
	return inference.NewClient(cfg.Inference, nil)
}

func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func ProvideMetrics(reg *prometheus.Registry) *metrics.Collector {
	return metrics.NewCollector(reg)
}

func ProvideManager() *ws.Manager {
	return ws.NewManager()
}

func ProvideTweetUseCase(storage repositories.Storage, client *inference.Client, manager *ws.Manager, collector *metrics.Collector) *usecases.TweetUseCase {
	return usecases.NewTweetUseCase(storage, client, manager, collector)
}

func ProvideTweetHandler(useCase *usecases.TweetUseCase) *httpHandler.TweetHandler {
	return httpHandler.NewTweetHandler(useCase)
}

func ProvideWSHandler(manager *ws.Manager) *handlers.WSHandler {
	return handlers.NewWSHandler(manager)
}

func ProvideServer(cfg *confs.Config, tweetHandler *httpHandler.TweetHandler, wsHandler *handlers.WSHandler, reg *prometheus.Registry) *server.Server {
	return server.NewServer(cfg, tweetHandler, wsHandler, reg)
}

func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	providers := []struct {
		name string
		fn   any
	}{
		{"config", ProvideConfig},
		{"database", ProvideDatabase},
		{"storage", ProvideStorage},
		{"inference client", ProvideInferenceClient},
		{"metrics registry", ProvideRegistry},
		{"metrics", ProvideMetrics},
		{"websocket manager", ProvideManager},
		{"tweet use case", ProvideTweetUseCase},
		{"tweet handler", ProvideTweetHandler},
		{"websocket handler", ProvideWSHandler},
		{"server", ProvideServer},
	}

	for _, p := range providers {
		if err := container.Provide(p.fn); err != nil {
			return nil, fmt.Errorf("failed to provide %s: %w", p.name, err)
		}
	}

	return container, nil
}
