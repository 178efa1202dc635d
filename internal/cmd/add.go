package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/malibayram/bpe-tokenizer-editor/internal/bpe"
)

// NewAddCmd builds `tokedit add`.
func NewAddCmd() *cobra.Command {
	var input, tokensPath, output, whitelistPath string
	var keepSize bool

	c := &cobra.Command{
		Use:   "add",
		Short: "Add tokens to a tokenizer, synthesizing merges as needed",
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

			if keepSize {
				var whitelist []string
				if whitelistPath != "" {
					whitelist, err = readLines(whitelistPath)
					if err != nil {
						return err
					}
				}
				res, err := m.AddTokensKeepSize(tokens, whitelist)
				if err != nil {
					return err
				}
				logger.Info("add_tokens_keep_size", "added", res.TokensAdded, "removed", res.TokensRemoved, "final_size", res.FinalVocabSize)
				fmt.Printf("added=%d removed=%d final_vocab_size=%d\n", res.TokensAdded, res.TokensRemoved, res.FinalVocabSize)
			} else {
				results := m.AddTokens(tokens)
				added := 0
				for _, r := range results {
					if r.Added {
						added++
					}
				}
				logger.Info("add_tokens", "requested", len(tokens), "added", added)
				fmt.Printf("requested=%d added=%d\n", len(tokens), added)
			}

			return m.Save(output)
		},
	}

	c.Flags().StringVar(&input, "input", "", "tokenizer JSON file to edit")
	c.Flags().StringVar(&tokensPath, "tokens", "", "file with one token per line to add")
	c.Flags().StringVar(&output, "output", "", "where to write the edited tokenizer")
	c.Flags().BoolVar(&keepSize, "keep-size", false, "remove surplus tokens to hold vocab size steady")
	c.Flags().StringVar(&whitelistPath, "whitelist", "", "file with one token per line never removed by --keep-size")
	c.MarkFlagRequired("input")
	c.MarkFlagRequired("tokens")
	c.MarkFlagRequired("output")

	return c
}

// readLines reads path and returns its non-empty lines.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
