package main

import (
	"context"
	"os"
	"os/signal"

	"logingate/commands"
)

// version is set via -ldflags in release builds
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.NewRootCmd(version).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
