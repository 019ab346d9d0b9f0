// Command headmeta renders, validates and previews page head metadata.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finitefield.org/hanko-headmeta/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
