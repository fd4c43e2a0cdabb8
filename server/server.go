package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tweet-server/confs"
	"tweet-server/handlers"
	httpHandler "tweet-server/handlers/http"
	"tweet-server/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	app *gin.Engine
	cfg *confs.Config
}

func NewServer(cfg *confs.Config, tweetHandler *httpHandler.TweetHandler, wsHandler *handlers.WSHandler, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		app: gin.New(),
		cfg: cfg,
	}
	s.routes(tweetHandler, wsHandler, gatherer)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

func (s *Server) routes(tweetHandler *httpHandler.TweetHandler, wsHandler *handlers.WSHandler, gatherer prometheus.Gatherer) {
	s.app.Use(RequestLogger(), httpHandler.Recovery())
	s.app.Use(cors.New(corsConfig(s.cfg.CORSAllowedOrigins)))

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})
	s.app.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))

	s.app.GET("/ws", wsHandler.HandleSubscribe)
	s.app.GET("/ws/subscribers", wsHandler.GetSubscribers)

	api := s.app.Group("/api")
	{
		api.POST("/generate", tweetHandler.Generate)

		tweets := api.Group("/tweets")
		{
			tweets.GET("", tweetHandler.ListTweets)
			tweets.DELETE("/:id", tweetHandler.DeleteTweet)
		}
	}
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              "0.0.0.0:" + s.cfg.Port,
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return config
}
