package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashboard/cmd"
	"dashboard/internal/pkg/eventloop"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := eventloop.NewLoop(logger)
	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(loopCtx)
	}()
	defer func() {
		stopLoop()
		<-loopDone
	}()

	app, err := cmd.NewCompositionRoot(configs, loop, logger)
	if err != nil {
		log.Fatalf("Error creating composition root: %v", err)
	}

	var activateErr error
	if err := loop.Do(ctx, func() { activateErr = app.Manager().Activate() }); err != nil || activateErr != nil {
		log.Fatalf("Error activating realtime feed: %v", errors.Join(err, activateErr))
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := app.CreateWebServer()
	if err != nil {
		log.Fatalf("Error creating web server: %v", err)
	}
	startWebServer(ctx, e, configs.HTTPPort)

	logger.Info("Shutting down")
	jobManager.StopAll()
	if err := loop.Do(context.Background(), app.Manager().Deactivate); err != nil {
		logger.Error("Failed to deactivate realtime feed", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := cmd.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}
	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Error reading configuration: %v", err)
	}
	return configs
}

// startWebServer serves until ctx is cancelled, then shuts the server down.
func startWebServer(ctx context.Context, e *echo.Echo, port string) {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()
	slog.Info("Web server started", "port", port)

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
