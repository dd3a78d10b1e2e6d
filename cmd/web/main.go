package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/skyshooter/internal/config"
	tuning "github.com/tomz197/skyshooter/internal/loop/config"
	"github.com/tomz197/skyshooter/internal/loop/server"
	"github.com/tomz197/skyshooter/internal/score"
	"github.com/tomz197/skyshooter/internal/web"
)

const (
	defaultHost     = "0.0.0.0"
	defaultPort     = "8080"
	leaderboardSize = 10
)

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv(config.EnvWebHost, defaultHost)
	port := config.GetEnv(config.EnvWebPort, defaultPort)
	scoreDir := config.GetEnv(config.EnvScoreDir, "")

	t, err := tuning.Load(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		logger.Fatal("Failed to load tuning", "err", err)
	}

	var stores func(string) score.Store
	if scoreDir != "" {
		dir := score.Dir{Base: scoreDir}
		stores = func(user string) score.Store { return dir.For(user) }
	}

	hub := server.NewHub(leaderboardSize)
	srv := &http.Server{
		Addr: net.JoinHostPort(host, port),
		Handler: web.NewServer(web.Options{
			Hub:    hub,
			Tuning: t,
			Store:  stores,
			Logger: logger,
		}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting web server", "addr", "http://"+srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...", "players", hub.Count())
	hub.Shutdown(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
}
