package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "tetherdemo",
		Short: "Demo server for the tether binding layer",
		Long: `tetherdemo serves a small counter application whose state lives in
view-model cells on the server. Every browser tab gets its own session,
its own delivery loop, and a scope of bindings pushing state changes out
over a WebSocket as JSON frames.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
