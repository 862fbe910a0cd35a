package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lugatuic/domainreport/config"
	"github.com/lugatuic/domainreport/export"
	"github.com/lugatuic/domainreport/internal/httpserver"
	"github.com/lugatuic/domainreport/ldaps"
	"github.com/lugatuic/domainreport/partitions"
	"github.com/lugatuic/domainreport/storage"
)

func main() {
	// Initialize structured logger early so we can log config errors.
	logger, lerr := zap.NewProduction()
	if lerr != nil {
		panic("failed to initialize logger: " + lerr.Error())
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", err)
		}
	}()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	pm, err := partitions.Load(cfg.PartitionMapFile)
	if err != nil {
		logger.Fatal("partition map load failed", zap.Error(err))
	}

	client, err := ldaps.NewClient(cfg, logger, pm)
	if err != nil {
		logger.Fatal("ldaps client init failed", zap.Error(err))
	}

	store, err := newReportStore(cfg, logger)
	if err != nil {
		logger.Fatal("report store init failed", zap.Error(err))
	}

	exporter := export.NewExporter(client, store, logger)

	s := httpserver.New(cfg, logger, client, exporter)
	handler := s.Handler()

	// Exports of large partitions can take a while; the write timeout covers them.
	srv := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      150 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http.listen", zap.String("addr", cfg.BindAddr), zap.String("store", cfg.ReportStore))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown.signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown.error", zap.Error(err))
		} else {
			logger.Info("shutdown.complete")
		}
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("http.server.failed", zap.Error(err))
		}
	}
}

func newReportStore(cfg *config.Config, logger *zap.Logger) (export.ReportStore, error) {
	switch cfg.ReportStore {
	case config.StoreS3:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := storage.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		logger.Info("report.store", zap.String("bucket", cfg.S3Bucket), zap.String("region", cfg.S3Region))
		return storage.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		logger.Info("report.store", zap.String("dir", cfg.ReportsDir))
		return export.NewFileStore(cfg.ReportsDir), nil
	}
}
