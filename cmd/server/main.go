package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stwalsh4118/leadrank/internal/config"
	"github.com/stwalsh4118/leadrank/internal/database"
	"github.com/stwalsh4118/leadrank/internal/engine"
	"github.com/stwalsh4118/leadrank/internal/handlers"
	"github.com/stwalsh4118/leadrank/internal/logger"
	"github.com/stwalsh4118/leadrank/internal/middleware"
	"github.com/stwalsh4118/leadrank/internal/outreach"
	"github.com/stwalsh4118/leadrank/internal/repository"
	"github.com/stwalsh4118/leadrank/internal/services"
	"github.com/stwalsh4118/leadrank/internal/worker"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env)
	log.Info("Starting leadrank API", logger.Fields{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, logger.Fields{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to apply schema", err, nil)
	}

	log.Info("Database connection established", logger.Fields{
		"host":     cfg.Database.Host,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	eng := engine.FromConfig(cfg.Engine)

	var publisher outreach.Publisher
	if cfg.Outreach.Enabled {
		rp, err := outreach.Dial(cfg.Outreach)
		if err != nil {
			log.Fatal("Failed to connect to outreach broker", err, logger.Fields{
				"exchange": cfg.Outreach.Exchange,
			})
		}
		defer func() {
			if err := rp.Close(); err != nil {
				log.Error("Failed to close outreach publisher", err, nil)
			}
		}()
		publisher = rp
		log.Info("Outreach publisher ready", logger.Fields{
			"exchange":    cfg.Outreach.Exchange,
			"routing_key": cfg.Outreach.RoutingKey,
		})
	}

	propertyRepo := repository.NewPropertyRepository(db)
	leadService := services.NewLeadService(services.LeadServiceDeps{
		Leads:         repository.NewLeadRepository(db),
		Investors:     repository.NewInvestorRepository(db),
		Engine:        eng,
		Publisher:     publisher,
		Logger:        log,
		InvestorLimit: cfg.Engine.MatchInvestorPage,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Order matters: RequestID -> Logger -> Metrics -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	engineHandler := handlers.NewEngineHandler(eng)
	leadHandler := handlers.NewLeadHandler(leadService)

	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", healthHandler.Info)
		v1.GET("/parcels/parse", engineHandler.Parse)
		v1.POST("/classify", engineHandler.Classify)
		v1.POST("/score", engineHandler.Score)
		v1.POST("/match", engineHandler.Match)

		leads := v1.Group("/leads")
		{
			leads.GET("/:id/score", leadHandler.Score)
			leads.GET("/:id/matches", leadHandler.Matches)
			leads.POST("/:id/dispatch", leadHandler.Dispatch)
		}
	}

	var wg sync.WaitGroup
	if cfg.Refresher.Enabled {
		refresher := worker.NewPriorityRefresher(propertyRepo, log, cfg.Refresher.Interval, cfg.Refresher.BatchSize)
		wg.Add(1)
		go func() {
			defer wg.Done()
			refresher.Start(ctx)
		}()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", logger.Fields{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, logger.Fields{
			"timeout": shutdownTimeout.String(),
		})
	}
	wg.Wait()

	log.Info("Server exited", nil)
}
