package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"

	"github.com/malibayram/bpe-tokenizer-editor/internal/bpe"
)

// planStep is one entry in a plan file: {"op": "...", ...params}. Params
// holds the step's raw fields (including "op" itself); each op decodes
// the subset of fields it cares about via mapstructure, so a plan file
// can carry only the fields its op understands and unknown keys are
// silently ignored.
type planStep struct {
	Op     string
	Params map[string]interface{}
}

type addParams struct {
	Tokens    []string `mapstructure:"tokens"`
	KeepSize  bool     `mapstructure:"keep_size"`
	Whitelist []string `mapstructure:"whitelist"`
}

type removeParams struct {
	Tokens []string `mapstructure:"tokens"`
}

type shrinkParams struct {
	Count int     `mapstructure:"count"`
	MinID bpe.TokenId `mapstructure:"min_id"`
}

type syncCharsParams struct {
	Source string      `mapstructure:"source"`
	MinID  bpe.TokenId `mapstructure:"min_id"`
}

type syncShortParams struct {
	Source string      `mapstructure:"source"`
	MinLen int         `mapstructure:"min_len"`
	MaxLen int         `mapstructure:"max_len"`
	MinID  bpe.TokenId `mapstructure:"min_id"`
}

// NewApplyCmd builds `tokedit apply`: an ordered plan of steps
// executed against one loaded Model, saved once at the end.
func NewApplyCmd() *cobra.Command {
	var input, planPath, output string

	c := &cobra.Command{
		Use:   "apply",
		Short: "Run an ordered plan of edit operations against a tokenizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opLogger(cmd)
			m, err := bpe.Load(input)
			if err != nil {
				return err
			}

			steps, err := loadPlan(planPath)
			if err != nil {
				return err
			}

			for i, step := range steps {
				logger.Info("apply step", "index", i, "op", step.Op)
				if err := applyStep(m, step); err != nil {
					return fmt.Errorf("step %d (%s): %w", i, step.Op, err)
				}
			}

			return m.Save(output)
		},
	}

	c.Flags().StringVar(&input, "input", "", "tokenizer JSON file to edit")
	c.Flags().StringVar(&planPath, "plan", "", "JSON file describing an ordered list of steps")
	c.Flags().StringVar(&output, "output", "", "where to write the edited tokenizer")
	c.MarkFlagRequired("input")
	c.MarkFlagRequired("plan")
	c.MarkFlagRequired("output")

	return c
}

func loadPlan(path string) ([]planStep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}

	steps := make([]planStep, len(raw))
	for i, entry := range raw {
		op, _ := entry["op"].(string)
		steps[i] = planStep{Op: op, Params: entry}
	}
	return steps, nil
}

func applyStep(m *bpe.Model, step planStep) error {
	switch step.Op {
	case "add":
		var p addParams
		if err := mapstructure.Decode(step.Params, &p); err != nil {
			return err
		}
		if p.KeepSize {
			if _, err := m.AddTokensKeepSize(p.Tokens, p.Whitelist); err != nil {
				return err
			}
		} else {
			m.AddTokens(p.Tokens)
		}
	case "remove":
		var p removeParams
		if err := mapstructure.Decode(step.Params, &p); err != nil {
			return err
		}
		m.RemoveTokens(p.Tokens)
	case "shrink":
		var p shrinkParams
		if err := mapstructure.Decode(step.Params, &p); err != nil {
			return err
		}
		if _, err := m.Shrink(p.Count, p.MinID); err != nil {
			return err
		}
	case "sync-chars":
		var p syncCharsParams
		if err := mapstructure.Decode(step.Params, &p); err != nil {
			return err
		}
		source, err := bpe.Load(p.Source)
		if err != nil {
			return err
		}
		m.SyncSingleChars(source, p.MinID)
	case "sync-short":
		var p syncShortParams
		if err := mapstructure.Decode(step.Params, &p); err != nil {
			return err
		}
		source, err := bpe.Load(p.Source)
		if err != nil {
			return err
		}
		if _, err := m.SyncShortTokens(source, p.MinLen, p.MaxLen, p.MinID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}
