package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/krxdash/config"
	_ "github.com/epeers/krxdash/docs"
	"github.com/epeers/krxdash/internal/handlers"
	"github.com/epeers/krxdash/internal/middleware"
	"github.com/epeers/krxdash/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(getConfig func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), getConfig())
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a := newApp(ctx, cfg)
	defer a.Close()

	go warmUp(ctx, a)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(a),
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server exited")
	return nil
}

// warmUp loads the company directory and the boundary file in parallel so the
// first visitor does not wait for them. Failures are retried on first use.
func warmUp(ctx context.Context, a *app) {
	defer services.TrackTime("warmUp", time.Now())

	var g errgroup.Group
	g.Go(func() error {
		return a.directory.Load(ctx)
	})
	g.Go(func() error {
		_, err := a.boundaries.Get()
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warnf("Warm-up incomplete: %v", err)
	}
}

func newRouter(a *app) *gin.Engine {
	if a.cfg.LogLevel < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := services.NewSessionRegistry(a.sessions, a.cfg.SessionTTL)
	dashboardHandler := handlers.NewDashboardHandler(registry, a.dashboard, a.directory, a.boundaries, a.cfg.DisplayName)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.Session(a.cfg.SessionTTL))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		body := gin.H{"status": "ok", "companies": a.directory.Count()}
		if at := a.directory.LoadedAt(); !at.IsZero() {
			body["directory_loaded_at"] = at.Format(time.RFC3339)
		}
		c.JSON(http.StatusOK, body)
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", dashboardHandler.Index)

	api := router.Group("/api", middleware.RequireSession())
	{
		api.GET("/session", dashboardHandler.GetSession)
		api.POST("/search", dashboardHandler.Search)
		api.POST("/favorites/toggle", dashboardHandler.ToggleFavorite)
		api.POST("/favorites/select", dashboardHandler.SelectFavorite)
		api.DELETE("/favorites/:name", dashboardHandler.RemoveFavorite)
		api.GET("/lookup", dashboardHandler.Lookup)
		api.GET("/export", dashboardHandler.Export)
		api.GET("/chart.png", dashboardHandler.ChartPNG)
		api.GET("/companies", dashboardHandler.Companies)
		api.GET("/geo", dashboardHandler.Geo)
	}

	return router
}
