package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malibayram/bpe-tokenizer-editor/internal/bpe"
)

// NewRemoveCmd builds `tokedit remove`.
func NewRemoveCmd() *cobra.Command {
	var input, tokensPath, output string

	c := &cobra.Command{
		Use:   "remove",
		Short: "Remove tokens and their dependent merges/tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opLogger(cmd)
			m, err := bpe.Load(input)
			if err != nil {
				return err
			}

			tokens, err := readLines(tokensPath)
			if err != nil {
				return err
			}

			results := m.RemoveTokens(tokens)
			totalRemoved := 0
			for _, r := range results {
				totalRemoved += len(r.RemovedTokens)
				if len(r.RemovedTokens) > 0 {
					fmt.Printf("removed %q: %v\n", r.RootToken, r.RemovedTokens)
				}
			}
			logger.Info("remove_tokens", "requested", len(tokens), "total_removed", totalRemoved)
			fmt.Printf("requested=%d total_tokens_removed=%d\n", len(tokens), totalRemoved)

			return m.Save(output)
		},
	}

	c.Flags().StringVar(&input, "input", "", "tokenizer JSON file to edit")
	c.Flags().StringVar(&tokensPath, "tokens", "", "file with one token per line to remove")
	c.Flags().StringVar(&output, "output", "", "where to write the edited tokenizer")
	c.MarkFlagRequired("input")
	c.MarkFlagRequired("tokens")
	c.MarkFlagRequired("output")

	return c
}
