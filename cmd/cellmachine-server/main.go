package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cellmachine/internal/config"
	"cellmachine/internal/server"
	"cellmachine/internal/sim"
	"cellmachine/internal/store"
)

func main() {
	dir := flag.String("dir", store.DefaultDir, "directory holding the last generated output")
	level := flag.String("log-level", os.Getenv("LOG_LEVEL"), "log level: debug, info, warn, error")
	flag.Parse()

	if *level == "" {
		*level = "info"
	}
	logger, err := config.NewLogger(os.Stderr, *level, "server")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	addr, err := config.BindAddr(os.Getenv)
	if err != nil {
		logger.Fatal("invalid bind address", "err", err)
	}

	runner := &sim.Runner{Logger: logger.WithPrefix("sim")}
	handler := server.New(runner, store.New(*dir), logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
