package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prepcheck/prepcheck/internal/config"
	"github.com/prepcheck/prepcheck/internal/database"
	"github.com/prepcheck/prepcheck/internal/geocode"
	"github.com/prepcheck/prepcheck/internal/logging"
	"github.com/prepcheck/prepcheck/internal/push"
	"github.com/prepcheck/prepcheck/internal/server"
	"github.com/prepcheck/prepcheck/internal/weather"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Without an API key the app still works; weather comes from canned
	// conditions so packing suggestions stay demonstrable.
	var (
		weatherSrc weather.Source
		geoClient  *geocode.Client
	)
	if cfg.WeatherAPIKey != "" {
		weatherSrc = weather.NewClient(cfg.WeatherAPIKey)
		geoClient = geocode.NewClient(cfg.WeatherAPIKey)
	} else {
		logger.Warn("OPENWEATHER_API_KEY not set, using stub weather")
		weatherSrc = &weather.Stub{}
	}

	pushCfg := push.Config{
		VAPIDPublicKey:  cfg.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.VAPIDPrivateKey,
	}
	if pushCfg.VAPIDPublicKey == "" || pushCfg.VAPIDPrivateKey == "" {
		logger.Warn("VAPID keys not set, push notifications disabled")
	}

	srv := server.New(db, weatherSrc, geoClient, pushCfg, logger)

	scheduler := srv.Scheduler()
	scheduler.Start(context.Background())
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("PrepCheck running at http://localhost:%s\n", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
