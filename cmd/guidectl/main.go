// Package main provides guidectl, a tool for solving constraint layout
// descriptions from the command line.
//
// Usage:
//
//	guidectl solve FILE... [--json] [--draw] [--fit] [--watch] [--metrics]
//	guidectl measure FILE [--orientation horizontal|vertical] [--for-size N]
//	guidectl version
//
// Examples:
//
//	guidectl solve toolbar.yaml             Print every rectangle
//	guidectl solve --width 120 toolbar.yaml Solve for a wider box
//	guidectl solve --fit toolbar.yaml       Solve for the current terminal
//	guidectl solve a.yaml b.yaml            Solve several files concurrently
//	guidectl solve --watch toolbar.yaml     Re-solve whenever the file changes
//	guidectl measure -o vertical --for-size 80 toolbar.yaml
//
// Set GUIDE_DEBUG=/path/to/log or pass --debug-log to trace solver activity.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-constraint/internal/debug"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	var debugLog string

	root := &cobra.Command{
		Use:           "guidectl",
		Short:         "Solve constraint layout descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debugLog == "" {
				return nil
			}
			return debug.Init(debugLog)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if debugLog == "" {
				return nil
			}
			return debug.Close()
		},
	}
	root.PersistentFlags().StringVar(&debugLog, "debug-log", "", "write structured debug logs to this file")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newMeasureCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "guidectl version %s\n", version)
		},
	})
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
