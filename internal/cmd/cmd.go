// Package cmd builds the tokedit command-line front end: a cobra
// command tree over the consistency-editing operations in
// internal/bpe.
package cmd

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/malibayram/bpe-tokenizer-editor/logutil"
)

// NewCLI builds the tokedit root command and wires every subcommand
// onto it.
func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tokedit",
		Short: "Edit BPE tokenizer vocab and merge files",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
		},
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable trace-level logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		level := slog.LevelInfo
		if verbose {
			level = logutil.LevelTrace
		}
		slog.SetDefault(logutil.NewLogger(os.Stderr, level))
		return nil
	}

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(
		NewValidateCmd(),
		NewAddCmd(),
		NewRemoveCmd(),
		NewStatsCmd(),
		NewShrinkCmd(),
		NewSyncCharsCmd(),
		NewSyncShortCmd(),
		NewReindexCmd(),
		NewApplyCmd(),
	)

	return rootCmd
}

// opLogger tags cmd's invocation with a correlation id the way a
// server tags an inbound request, and returns a logger scoped to it.
func opLogger(cmd *cobra.Command) *slog.Logger {
	id := uuid.New().String()
	return slog.Default().With("op", cmd.Name(), "correlation_id", id)
}
