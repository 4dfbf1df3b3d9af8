// Package main is the entry point for the tin CLI.
//
// tin provisions an OCI always-free gateway instance with terraform, retrying
// around the free tier's chronic capacity shortages, and reclaims the
// leftover VCNs that failed runs strand in the tenancy.
//
// Commands: deploy, job, cleanup, version.
//
// For detailed usage information, run:
//
//	tin --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dynamicalsystem/tin/cmd/tin/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Interrupts cancel the command context so the retry and polling loops
	// can stop cleanly at their next wait.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
