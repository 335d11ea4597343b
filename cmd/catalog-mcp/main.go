package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/worldfacts/catalog-mcp/internal/adapters/driving/cli"
	"github.com/worldfacts/catalog-mcp/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
