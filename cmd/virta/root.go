package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:   "virta",
		Short: "Log Subscription Wiring Engine",
		Long: `Virta - Log Subscription Wiring Engine

Virta augments a generated resource graph so that log-producing
resources are wired to a downstream log forwarder. It respects the
per-log-group subscription quota, stays idempotent across repeated
passes, and honors per-API logging modes.

Virta only plans graph mutations; deployment happens elsewhere.`,
		Version: version,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`Virta {{.Version}} - Log Subscription Wiring Engine
`)
}
