package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/beemotools/beemo-exporter/internal/httpapi/handlers"
	"github.com/beemotools/beemo-exporter/internal/httpapi/middleware"
	"github.com/beemotools/beemo-exporter/pkg/config"
	"github.com/beemotools/beemo-exporter/pkg/datasets"
	"github.com/beemotools/beemo-exporter/pkg/store"
)

type APIServer struct {
	config   *config.AppConfig
	router   *gin.Engine
	server   *http.Server
	handlers *handlers.Handlers
}

func NewAPIServer(cfg *config.AppConfig, dataStore store.Interface) *APIServer {
	if cfg.App.Environment == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(&cfg.APIServer))

	s := &APIServer{
		config:   cfg,
		router:   router,
		handlers: handlers.NewHandlers(dataStore),
	}

	s.setupRoutes()
	return s
}

func (s *APIServer) setupRoutes() {
	for _, name := range datasets.Names {
		s.router.GET("/"+name+".csv", s.handlers.DownloadDataset(name))
	}
	s.router.NoRoute(handlers.NotFound)
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *APIServer) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.APIServer.Port),
		Handler: s.router,
	}

	go s.stopOnCancel(ctx)
	logrus.WithField("address", s.server.Addr).Info("starting http API server")
	if err := s.server.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			logrus.Info("http API server stopped")
			return nil
		}
		return fmt.Errorf("failed to start http API server: %w", err)
	}
	return nil
}

func (s *APIServer) stopOnCancel(ctx context.Context) {
	<-ctx.Done()
	logrus.Info("turning down http API server")

	if err := s.server.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Error("error during http API server shutdown")
	}
}
