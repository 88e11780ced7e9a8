// Package main is the entry point for the flowbridge CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/runger/flowbridge/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cmd.ExitCode(err))
	}
}
