package bpe

import "testing"

func TestValidateMergesFindsInvalidOutput(t *testing.T) {
	m := buildVocab(map[string]TokenId{"a": 0, "b": 1})
	m.appendMergeNoIndexUpdateForTest(Merge{Left: "a", Right: "b"}) // "ab" never inserted

	res := m.ValidateMerges()
	if res.InvalidCount != 1 || res.ValidCount != 0 {
		t.Fatalf("expected 1 invalid merge, got valid=%d invalid=%d", res.ValidCount, res.InvalidCount)
	}
	if len(res.Invalid) != 1 || res.Invalid[0].Left != "a" || res.Invalid[0].Right != "b" {
		t.Fatalf("unexpected invalid entry: %+v", res.Invalid)
	}
}

func TestRemoveInvalidMerges(t *testing.T) {
	m := buildVocab(map[string]TokenId{"a": 0, "b": 1, "ab": 2})
	m.appendMerge(Merge{Left: "a", Right: "b"})               // valid
	m.appendMergeNoIndexUpdateForTest(Merge{Left: "a", Right: "c"}) // invalid, "ac" absent

	removed := m.RemoveInvalidMerges()
	if removed != 1 {
		t.Fatalf("expected 1 merge removed, got %d", removed)
	}
	if m.MergesCount() != 1 {
		t.Fatalf("expected 1 surviving merge, got %d", m.MergesCount())
	}
	if res := m.ValidateMerges(); res.InvalidCount != 0 {
		t.Fatalf("expected no invalid merges left, got %d", res.InvalidCount)
	}
}

// appendMergeNoIndexUpdateForTest appends an intentionally inconsistent
// merge (output absent from vocab) without going through the normal
// synthesis path, to exercise the validator against pre-broken input —
// exactly the case spec.md says load must tolerate.
func (m *Model) appendMergeNoIndexUpdateForTest(mg Merge) {
	pos := len(m.Merges)
	m.Merges = append(m.Merges, mg)
	m.addUser(mg.Left, pos)
	m.addUser(mg.Right, pos)
}
