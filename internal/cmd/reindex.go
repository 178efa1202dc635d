package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malibayram/bpe-tokenizer-editor/internal/bpe"
)

// NewReindexCmd builds `tokedit reindex`.
func NewReindexCmd() *cobra.Command {
	var input, output string
	var dryRun bool

	c := &cobra.Command{
		Use:   "reindex",
		Short: "Compact vocab ids to a dense [0, vocab_size) range",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opLogger(cmd)
			m, err := bpe.Load(input)
			if err != nil {
				return err
			}

			report := m.CheckVocabGaps()
			fmt.Printf("has_gaps=%v total_gaps=%d min_id=%d max_id=%d\n",
				report.HasGaps, report.TotalGaps, report.MinID, report.MaxID)

			if dryRun {
				return nil
			}
			if output == "" {
				return fmt.Errorf("--output is required unless --dry-run is set")
			}

			m.ReindexVocab()
			logger.Info("reindex complete")
			return m.Save(output)
		},
	}

	c.Flags().StringVar(&input, "input", "", "tokenizer JSON file to edit")
	c.Flags().StringVar(&output, "output", "", "where to write the reindexed tokenizer")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "report gaps without modifying anything")
	c.MarkFlagRequired("input")

	return c
}
