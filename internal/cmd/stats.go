package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/malibayram/bpe-tokenizer-editor/internal/bpe"
)

// NewStatsCmd builds `tokedit stats`.
func NewStatsCmd() *cobra.Command {
	var input string

	c := &cobra.Command{
		Use:   "stats",
		Short: "Show vocab/merge counts and the character-length distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := bpe.Load(input)
			if err != nil {
				return err
			}

			s := m.GetStats()
			fmt.Printf("vocab_size=%d merges_count=%d single_char=%d special=%d min_id=%d max_id=%d\n",
				s.VocabSize, s.MergesCount, s.SingleCharCount, s.SpecialTokenCount, s.MinID, s.MaxID)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"CHAR LENGTH", "COUNT"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			for _, lc := range s.LengthDistribution {
				table.Append([]string{fmt.Sprintf("%d", lc.CharLength), fmt.Sprintf("%d", lc.Count)})
			}
			table.Render()

			return nil
		},
	}

	c.Flags().StringVar(&input, "input", "", "tokenizer JSON file to inspect")
	c.MarkFlagRequired("input")

	return c
}
