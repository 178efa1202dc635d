package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/malibayram/bpe-tokenizer-editor/internal/bpe"
)

// loadSourceAndTarget loads two independent tokenizer files
// concurrently. Loading is pure I/O fan-out before either *bpe.Model
// exists — no shared mutable state crosses the goroutine boundary, so
// this does not conflict with the editor's single-threaded mutation
// model.
func loadSourceAndTarget(ctx context.Context, sourcePath, targetPath string) (source, target *bpe.Model, err error) {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		source, err = bpe.Load(sourcePath)
		return err
	})
	g.Go(func() error {
		var err error
		target, err = bpe.Load(targetPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}

// NewSyncCharsCmd builds `tokedit sync-chars`.
func NewSyncCharsCmd() *cobra.Command {
	var sourcePath, targetPath, output string
	var minID int32

	c := &cobra.Command{
		Use:   "sync-chars",
		Short: "Import single-character tokens present in a reference tokenizer but missing locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opLogger(cmd)
			source, target, err := loadSourceAndTarget(cmd.Context(), sourcePath, targetPath)
			if err != nil {
				return err
			}

			res := target.SyncSingleChars(source, minID)
			logger.Info("sync_single_chars",
				"chars_added", res.TokensAddedCount,
				"tokens_removed", res.TokensRemovedCount,
				"total_tokens_removed", res.TotalTokensRemoved,
				"total_merges_removed", res.TotalMergesRemoved)
			fmt.Printf("chars_added=%d tokens_removed=%d total_tokens_removed=%d total_merges_removed=%d\n",
				res.TokensAddedCount, res.TokensRemovedCount, res.TotalTokensRemoved, res.TotalMergesRemoved)

			return target.Save(output)
		},
	}

	c.Flags().StringVar(&sourcePath, "source", "", "reference tokenizer JSON file")
	c.Flags().StringVar(&targetPath, "target", "", "tokenizer JSON file to import into")
	c.Flags().StringVar(&output, "output", "", "where to write the synced tokenizer")
	c.Flags().Int32Var(&minID, "min-id", 0, "only remove surplus tokens with id >= this")
	c.MarkFlagRequired("source")
	c.MarkFlagRequired("target")
	c.MarkFlagRequired("output")

	return c
}

// NewSyncShortCmd builds `tokedit sync-short`.
func NewSyncShortCmd() *cobra.Command {
	var sourcePath, targetPath, output string
	var minLen, maxLen int
	var minID int32

	c := &cobra.Command{
		Use:   "sync-short",
		Short: "Import short tokens present in a reference tokenizer but missing locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opLogger(cmd)
			source, target, err := loadSourceAndTarget(cmd.Context(), sourcePath, targetPath)
			if err != nil {
				return err
			}

			res, err := target.SyncShortTokens(source, minLen, maxLen, minID)
			if err != nil {
				return err
			}
			logger.Info("sync_short_tokens",
				"tokens_added", res.TokensAddedCount,
				"tokens_removed", res.TokensRemovedCount,
				"total_tokens_removed", res.TotalTokensRemoved,
				"total_merges_removed", res.TotalMergesRemoved)
			fmt.Printf("tokens_added=%d tokens_removed=%d total_tokens_removed=%d total_merges_removed=%d\n",
				res.TokensAddedCount, res.TokensRemovedCount, res.TotalTokensRemoved, res.TotalMergesRemoved)

			return target.Save(output)
		},
	}

	c.Flags().StringVar(&sourcePath, "source", "", "reference tokenizer JSON file")
	c.Flags().StringVar(&targetPath, "target", "", "tokenizer JSON file to import into")
	c.Flags().StringVar(&output, "output", "", "where to write the synced tokenizer")
	c.Flags().IntVar(&minLen, "min-len", 2, "minimum character length to import")
	c.Flags().IntVar(&maxLen, "max-len", 4, "maximum character length to import")
	c.Flags().Int32Var(&minID, "min-id", 0, "only remove surplus tokens with id >= this")
	c.MarkFlagRequired("source")
	c.MarkFlagRequired("target")
	c.MarkFlagRequired("output")

	return c
}
