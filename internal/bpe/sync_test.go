package bpe

import "testing"

func TestSyncSingleCharsImportsMissingAlphabet(t *testing.T) {
	source := buildVocab(map[string]TokenId{"a": 0, "b": 1, "ñ": 500})
	target := buildVocabWithMerges(
		map[string]TokenId{"a": 0, "b": 1, "longtoken": 2},
		nil,
	)
	// longtoken must be shrinkable: length >= 2, non-special, id >= minID.
	initialSize := target.VocabSize()

	res := target.SyncSingleChars(source, 0)

	if res.TokensAddedCount != 1 {
		t.Fatalf("expected 1 char added (ñ), got %d", res.TokensAddedCount)
	}
	if !target.HasToken("ñ") {
		t.Fatalf("expected ñ imported into target vocab")
	}
	if target.VocabSize() != initialSize {
		t.Fatalf("expected vocab size unchanged (one removed, one added), got %d vs %d", target.VocabSize(), initialSize)
	}
}

func TestSyncShortTokensRejectsInvertedRange(t *testing.T) {
	source := NewModel()
	target := NewModel()
	_, err := target.SyncShortTokens(source, 5, 2, 0)
	if err == nil {
		t.Fatalf("expected an error when min_len > max_len")
	}
}

func TestSyncShortTokensReusesSourceMergeRule(t *testing.T) {
	source := buildVocabWithMerges(
		map[string]TokenId{"a": 0, "b": 1, "ab": 2},
		[]Merge{{Left: "a", Right: "b"}},
	)
	target := buildVocab(map[string]TokenId{"a": 0, "b": 1})

	res, err := target.SyncShortTokens(source, 2, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TokensAddedCount != 1 {
		t.Fatalf("expected 1 token added, got %d", res.TokensAddedCount)
	}
	if !target.HasToken("ab") {
		t.Fatalf("expected ab imported")
	}
	if target.MergesCount() != 1 || target.Merges[0] != (Merge{Left: "a", Right: "b"}) {
		t.Fatalf("expected the source's exact merge rule reused, got %+v", target.Merges)
	}
}

func TestSyncShortTokensSynthesizesWhenSourceRuleUnusable(t *testing.T) {
	source := buildVocabWithMerges(
		map[string]TokenId{"x": 0, "y": 1, "xy": 2},
		[]Merge{{Left: "x", Right: "y"}},
	)
	target := NewModel() // neither x nor y present in target

	res, err := target.SyncShortTokens(source, 2, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TokensAddedCount != 1 {
		t.Fatalf("expected 1 token added, got %d", res.TokensAddedCount)
	}
	if !target.HasToken("xy") {
		t.Fatalf("expected xy synthesized via char_chain since x/y were absent")
	}
}
