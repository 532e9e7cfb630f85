package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "smc/cmd"
	"smc/cmd/root"
	"smc/internal/logger"
)

func main() {
	// Ctrl-C cancels running scripts instead of leaving them orphaned
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := root.RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error(err)
		logger.Sync()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	logger.Sync()
}
