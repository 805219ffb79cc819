package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/vidnotes/vidnotes-agent/internal/api"
	"github.com/vidnotes/vidnotes-agent/internal/config"
	"github.com/vidnotes/vidnotes-agent/internal/logging"
	"github.com/vidnotes/vidnotes-agent/internal/session"
	"github.com/vidnotes/vidnotes-agent/internal/ui"
)

func main() {
	Execute()
}

func run(configPath string, headless, verbose bool) error {
	startTime := time.Now()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(logLevel(cfg, verbose))
	logger.Info("starting vidnotes agent", "version", config.Version, "export_dir", logging.SanitizePath(cfg.ExportDir()))

	sess := session.New(session.Config{
		PollInterval: cfg.PollInterval(),
		Logger:       logging.WithComponent(logger, "session"),
	})
	defer sess.Close()

	apiServer := api.NewServer(api.ServerConfig{
		Port:      cfg.Port(),
		ExportDir: cfg.ExportDir(),
		Session:   sess,
		Logger:    logging.WithComponent(logger, "api"),
		StartTime: startTime,
		Version:   config.Version,
	})

	fmt.Println()
	fmt.Printf("  Video Notes Agent v%s\n", config.Version)
	fmt.Printf("  Open %s in your browser\n", apiServer.URL())
	fmt.Println()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- apiServer.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	quitCh := make(chan struct{})
	var quitOnce sync.Once
	quit := func() { quitOnce.Do(func() { close(quitCh) }) }

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			quit()
		case err := <-serverErr:
			if err != nil {
				logger.Error("HTTP server error", "error", err)
			}
			quit()
		case <-quitCh:
		}
	}()

	if headless || cfg.Headless() {
		logger.Info("running in headless mode (no system tray)")
	} else {
		tray := ui.NewTray(ui.TrayConfig{
			Session:   sess,
			ExportDir: cfg.ExportDir(),
			PlayerURL: apiServer.URL(),
			Logger:    logging.WithComponent(logger, "tray"),
			OnQuit:    quit,
		})
		go tray.Run()
	}

	<-quitCh

	logger.Info("initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// logLevel is the configured level, raised to debug by --verbose.
func logLevel(cfg config.Config, verbose bool) string {
	if verbose {
		return "debug"
	}
	return cfg.LogLevel()
}
