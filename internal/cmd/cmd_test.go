package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/malibayram/bpe-tokenizer-editor/internal/bpe"
)

func writeTokenizerFile(t *testing.T, dir, name string, m *bpe.Model) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, m.Save(path))
	return path
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	root := NewCLI()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestValidateCmdFixesInvalidMerges(t *testing.T) {
	dir := t.TempDir()

	m := bpe.NewModel()
	m.AddTokenAtomic("a")
	m.AddTokenAtomic("b")
	// no "ab" in vocab: this merge is invalid and validate --fix must drop it.
	brokenPath := writeBrokenMerge(t, dir, m)

	fixedPath := filepath.Join(dir, "fixed.json")
	err := runCLI(t, "validate", "--input", brokenPath, "--fix", "--output", fixedPath)
	require.NoError(t, err)

	fixed, err := bpe.Load(fixedPath)
	require.NoError(t, err)
	if fixed.MergesCount() != 0 {
		t.Fatalf("expected the invalid merge to be dropped, got %d merges", fixed.MergesCount())
	}
}

// writeBrokenMerge writes a tokenizer file whose model.merges references
// an output token absent from vocab, bypassing the normal synthesis
// path the way a hand-edited or corrupted file would.
func writeBrokenMerge(t *testing.T, dir string, m *bpe.Model) string {
	t.Helper()
	data, err := m.ToString()
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	var modelObj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["model"], &modelObj))
	modelObj["merges"] = json.RawMessage(`["a b"]`)
	remarshaled, err := json.Marshal(modelObj)
	require.NoError(t, err)
	doc["model"] = remarshaled

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, out, 0o644))
	return path
}

func TestAddCmdRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := bpe.NewModel()
	m.AddTokenAtomic("a")
	m.AddTokenAtomic("b")
	m.AddTokenAtomic("c")
	input := writeTokenizerFile(t, dir, "in.json", m)

	tokensFile := filepath.Join(dir, "tokens.txt")
	require.NoError(t, os.WriteFile(tokensFile, []byte("abc\n"), 0o644))

	output := filepath.Join(dir, "out.json")
	err := runCLI(t, "add", "--input", input, "--tokens", tokensFile, "--output", output)
	require.NoError(t, err)

	result, err := bpe.Load(output)
	require.NoError(t, err)
	if !result.HasToken("abc") {
		t.Fatalf("expected abc to be present after add")
	}
}

func TestStatsCmdSucceeds(t *testing.T) {
	dir := t.TempDir()
	m := bpe.NewModel()
	m.AddTokenAtomic("a")
	m.AddTokenAtomic("b")
	input := writeTokenizerFile(t, dir, "in.json", m)

	err := runCLI(t, "stats", "--input", input)
	require.NoError(t, err)
}

func TestReindexCmdDryRunDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	m := bpe.NewModel()
	m.Vocab["a"] = 0
	m.Vocab["b"] = 5
	input := writeTokenizerFile(t, dir, "in.json", m)

	err := runCLI(t, "reindex", "--input", input, "--dry-run")
	require.NoError(t, err)

	unchanged, err := bpe.Load(input)
	require.NoError(t, err)
	if id, _ := unchanged.IDOf("b"); id != 5 {
		t.Fatalf("dry-run must not modify the input file, got id=%d", id)
	}
}

func TestApplyCmdRunsPlanSteps(t *testing.T) {
	dir := t.TempDir()
	m := bpe.NewModel()
	m.AddTokenAtomic("a")
	m.AddTokenAtomic("b")
	input := writeTokenizerFile(t, dir, "in.json", m)

	plan := `[{"op": "add", "tokens": ["ab"]}]`
	planPath := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(planPath, []byte(plan), 0o644))

	output := filepath.Join(dir, "out.json")
	err := runCLI(t, "apply", "--input", input, "--plan", planPath, "--output", output)
	require.NoError(t, err)

	result, err := bpe.Load(output)
	require.NoError(t, err)
	if !result.HasToken("ab") {
		t.Fatalf("expected the plan's add step to have run")
	}
}

func TestNewCLICommandTree(t *testing.T) {
	root := NewCLI()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	want := []string{"validate", "add", "remove", "stats", "shrink", "sync-chars", "sync-short", "reindex", "apply"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("unexpected command tree (-want +got):\n%s", diff)
	}
}
