package bpe

import "testing"

func buildVocabWithMerges(vocab map[string]TokenId, merges []Merge) *Model {
	m := buildVocab(vocab)
	for _, mg := range merges {
		m.appendMerge(mg)
	}
	return m
}

func TestRemoveTokenCascade(t *testing.T) {
	m := buildVocabWithMerges(
		map[string]TokenId{"a": 0, "b": 1, "c": 2, "ab": 3, "abc": 4},
		[]Merge{{Left: "a", Right: "b"}, {Left: "ab", Right: "c"}},
	)

	res := m.RemoveToken("ab")

	if len(res.RemovedTokens) != 2 || res.RemovedTokens[0] != "ab" || res.RemovedTokens[1] != "abc" {
		t.Fatalf("expected removed tokens [ab abc], got %v", res.RemovedTokens)
	}
	if len(res.RemovedMerges) != 2 {
		t.Fatalf("expected both merges removed, got %v", res.RemovedMerges)
	}
	if m.VocabSize() != 3 {
		t.Fatalf("expected final vocab size 3, got %d", m.VocabSize())
	}
	if m.MergesCount() != 0 {
		t.Fatalf("expected no merges left, got %d", m.MergesCount())
	}
	if m.HasToken("ab") || m.HasToken("abc") {
		t.Fatalf("ab and abc must be gone from vocab")
	}
	if !m.HasToken("a") || !m.HasToken("b") || !m.HasToken("c") {
		t.Fatalf("a, b, c must survive")
	}
}

func TestRemoveTokenTwiceIsIdempotent(t *testing.T) {
	m := buildVocab(map[string]TokenId{"a": 0})

	first := m.RemoveToken("a")
	if len(first.RemovedTokens) != 1 {
		t.Fatalf("expected first removal to remove 'a', got %v", first.RemovedTokens)
	}

	second := m.RemoveToken("a")
	if len(second.RemovedTokens) != 0 || len(second.RemovedMerges) != 0 {
		t.Fatalf("second removal of an already-gone token must be empty, got %+v", second)
	}
}

func TestRemoveTokenMissingIsNoOp(t *testing.T) {
	m := NewModel()
	res := m.RemoveToken("ghost")
	if res.RootToken != "ghost" {
		t.Fatalf("expected RootToken to echo the input")
	}
	if len(res.RemovedTokens) != 0 {
		t.Fatalf("expected empty removal for a missing token")
	}
}

func TestRemoveTokenSurvivesSpecialProducerLoss(t *testing.T) {
	m := buildVocabWithMerges(
		map[string]TokenId{"<": 0, "x>": 1, "<x>": 2},
		[]Merge{{Left: "<", Right: "x>"}},
	)
	m.Special = append(m.Special, SpecialToken{ID: 2, Content: "<x>", Special: true})

	res := m.RemoveToken("<")

	if len(res.RemovedTokens) != 1 || res.RemovedTokens[0] != "<" {
		t.Fatalf("expected only the root removed, got %v", res.RemovedTokens)
	}
	if !m.HasToken("<x>") {
		t.Fatalf("special token <x> must survive even though its producer merge was removed")
	}
	if m.MergesCount() != 0 {
		t.Fatalf("expected the orphaning merge to be removed")
	}
}

func TestRemoveTokensAppliesInOrder(t *testing.T) {
	m := buildVocab(map[string]TokenId{"a": 0, "b": 1})
	results := m.RemoveTokens([]string{"a", "b"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results")
	}
	if m.VocabSize() != 0 {
		t.Fatalf("expected empty vocab after removing both tokens")
	}
}
