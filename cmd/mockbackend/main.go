package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/contract-explorer/internal/cache"
	"github.com/example/contract-explorer/internal/config"
	"github.com/example/contract-explorer/internal/dataset"
	httpserver "github.com/example/contract-explorer/internal/http"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	data := dataset.Generate(cfg.Seed, cfg.DatasetSize)
	vendors, institutions, trends := data.Counts()
	logger.Info("dataset ready",
		zap.Int("vendors", vendors),
		zap.Int("institutions", institutions),
		zap.Int("trends", trends),
	)

	respCache, err := cache.NewResponseCache(1<<26 /* ~64MB */, cfg.CacheTTL)
	if err != nil {
		logger.Fatal("cache", zap.Error(err))
	}

	s := httpserver.NewServer(data, respCache, logger, cfg.CORSOrigin)

	server := &http.Server{Addr: ":" + cfg.Port, Handler: s.R}
	go func() {
		logger.Info("http listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShut()
	_ = server.Shutdown(ctxShut)
	logger.Info("shutdown complete")
}
