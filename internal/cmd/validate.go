package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malibayram/bpe-tokenizer-editor/internal/bpe"
)

// NewValidateCmd builds `tokedit validate`.
func NewValidateCmd() *cobra.Command {
	var input, output string
	var fix bool

	c := &cobra.Command{
		Use:   "validate",
		Short: "Report merge rules whose output is missing from the vocab",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opLogger(cmd)
			m, err := bpe.Load(input)
			if err != nil {
				return err
			}

			result := m.ValidateMerges()
			logger.Info("validated merges", "valid", result.ValidCount, "invalid", result.InvalidCount)
			for _, inv := range result.Invalid {
				fmt.Printf("invalid merge at %d: (%q, %q)\n", inv.Index, inv.Left, inv.Right)
			}

			if fix && result.InvalidCount > 0 {
				removed := m.RemoveInvalidMerges()
				logger.Info("removed invalid merges", "count", removed)
				if output != "" {
					if err := m.Save(output); err != nil {
						return err
					}
				}
			}

			fmt.Printf("valid=%d invalid=%d\n", result.ValidCount, result.InvalidCount)
			return nil
		},
	}

	c.Flags().StringVar(&input, "input", "", "tokenizer JSON file to validate")
	c.Flags().StringVar(&output, "output", "", "where to write the fixed tokenizer, if --fix is set")
	c.Flags().BoolVar(&fix, "fix", false, "remove invalid merges and save the result")
	c.MarkFlagRequired("input")

	return c
}
