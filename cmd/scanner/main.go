package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"WarehouseGolang/internal/scanner"
	"WarehouseGolang/pkg/log"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	serverURL := os.Getenv("SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:5000"
	}

	snapshotURL := os.Getenv("SNAPSHOT_URL")
	if snapshotURL == "" {
		logger.Fatal("SNAPSHOT_URL is required")
	}

	mode := scanner.Mode(os.Getenv("SCANNER_MODE"))

	s, err := scanner.New(scanner.Config{
		ServerURL:   serverURL,
		SnapshotURL: snapshotURL,
		Mode:        mode,
		LogPath:     os.Getenv("SCANNER_LOG_PATH"),
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to build scanner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutting down scanner...")
		cancel()
	}()

	logger.Info("Scanner started")
	if err := s.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatalf("Scanner stopped: %v", err)
	}
}
