package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malibayram/bpe-tokenizer-editor/internal/bpe"
)

// NewShrinkCmd builds `tokedit shrink`.
func NewShrinkCmd() *cobra.Command {
	var input, output string
	var count int
	var minID int32
	var dryRun bool

	c := &cobra.Command{
		Use:   "shrink",
		Short: "Remove up to --count of the longest, newest non-special tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opLogger(cmd)
			m, err := bpe.Load(input)
			if err != nil {
				return err
			}

			if dryRun {
				candidates, err := m.FindTokensToShrink(count, minID)
				if err != nil {
					return err
				}
				for _, c := range candidates {
					fmt.Printf("would remove %q (id=%d len=%d)\n", c.Token, c.ID, c.CharLen)
				}
				return nil
			}
			if output == "" {
				return fmt.Errorf("--output is required unless --dry-run is set")
			}

			res, err := runShrinkWithProgress(m, count, minID)
			if err != nil {
				return err
			}
			logger.Info("shrink",
				"tokens_removed_count", res.TokensRemovedCount,
				"total_tokens_removed", res.TotalTokensRemoved,
				"total_merges_removed", res.TotalMergesRemoved,
				"final_vocab_size", res.FinalVocabSize)
			fmt.Printf("vocab %d -> %d, merges %d -> %d (roots=%d, total_removed=%d)\n",
				res.InitialVocabSize, res.FinalVocabSize, res.InitialMergeCount, res.FinalMergeCount,
				res.TokensRemovedCount, res.TotalTokensRemoved)

			return m.Save(output)
		},
	}

	c.Flags().StringVar(&input, "input", "", "tokenizer JSON file to edit")
	c.Flags().StringVar(&output, "output", "", "where to write the shrunk tokenizer")
	c.Flags().IntVar(&count, "count", 0, "number of root tokens to remove")
	c.Flags().Int32Var(&minID, "min-id", 0, "only consider tokens with id >= this")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "print candidates without modifying anything")
	c.MarkFlagRequired("input")
	c.MarkFlagRequired("count")

	return c
}

// runShrinkWithProgress reimplements bpe.Model.Shrink's root-removal
// loop at the CLI layer so each candidate's removal can be reported to
// an attached terminal — the core itself stays non-interactive per
// spec.md §5.
func runShrinkWithProgress(m *bpe.Model, count int, minID int32) (bpe.ShrinkResult, error) {
	res := bpe.ShrinkResult{
		InitialVocabSize:  m.VocabSize(),
		InitialMergeCount: m.MergesCount(),
	}

	candidates, err := m.FindTokensToShrink(count, minID)
	if err != nil {
		return bpe.ShrinkResult{}, err
	}
	for i, c := range candidates {
		reportProgress("shrinking %d/%d: %s", i+1, len(candidates), c.Token)
		removal := m.RemoveToken(c.Token)
		if len(removal.RemovedTokens) == 0 {
			continue
		}
		res.TokensRemovedCount++
		res.TotalTokensRemoved += len(removal.RemovedTokens)
		res.TotalMergesRemoved += len(removal.RemovedMerges)
	}
	finishProgress()

	res.FinalVocabSize = m.VocabSize()
	res.FinalMergeCount = m.MergesCount()
	return res, nil
}
