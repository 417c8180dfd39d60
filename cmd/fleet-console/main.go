package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/AktanAlmazovich/Fleet-manager/cmd/fleet-console/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.NewConsoleCommand(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}
