package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/WesleyAC/hanabi/internal/config"
	"github.com/WesleyAC/hanabi/internal/logging"
	"github.com/WesleyAC/hanabi/internal/server"
	"go.uber.org/zap"
)

//go:embed web/static
var static embed.FS

func main() {
	port := flag.Int("port", 0, "server port (overrides HANABI_PORT)")
	envFile := flag.String("env", ".env", "dotenv file to load if present")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sub, err := fs.Sub(static, "web/static")
	if err != nil {
		logger.Fatal("static files", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, sub, logger).Start(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
