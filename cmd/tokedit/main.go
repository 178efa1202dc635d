// Command tokedit edits BPE tokenizer vocab and merge files.
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/malibayram/bpe-tokenizer-editor/internal/cmd"
)

func main() {
	cobra.CheckErr(cmd.NewCLI().ExecuteContext(context.Background()))
}
