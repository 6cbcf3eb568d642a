package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shiviagarwalwork/brainbites/internal/cli"
)

func main() {
	// Cancelled on Ctrl+C so the daemon can shut down cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
