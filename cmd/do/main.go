package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillbloom/skillbloom/cmd/do/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
