package bpe

import "testing"

func TestAddTokensKeepSizeHoldsVocabSizeSteady(t *testing.T) {
	m := buildVocab(map[string]TokenId{
		"a":         0,
		"b":         1,
		"c":         2,
		"longtoken": 3,
		"otherlong": 4,
	})
	initial := m.VocabSize()

	res, err := m.AddTokensKeepSize([]string{"abc"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.FinalVocabSize != initial {
		t.Fatalf("expected final vocab size to match initial %d, got %d", initial, res.FinalVocabSize)
	}
	if !m.HasToken("abc") {
		t.Fatalf("expected abc to have been added")
	}
}

func TestAddTokensKeepSizeSkipsAlreadyPresent(t *testing.T) {
	m := buildVocab(map[string]TokenId{"a": 0})
	res, err := m.AddTokensKeepSize([]string{"a"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TokensAdded != 0 {
		t.Fatalf("expected 0 tokens added for an already-present token, got %d", res.TokensAdded)
	}
	if res.FinalVocabSize != 1 {
		t.Fatalf("expected vocab size unchanged, got %d", res.FinalVocabSize)
	}
}

func TestAddTokensKeepSizeHonorsWhitelist(t *testing.T) {
	m := buildVocab(map[string]TokenId{
		"a":          0,
		"b":          1,
		"protected":  2,
		"removeable": 3,
	})
	initial := m.VocabSize()

	if _, err := m.AddTokensKeepSize([]string{"ab"}, []string{"protected"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !m.HasToken("protected") {
		t.Fatalf("whitelisted token must never be chosen as a removal victim")
	}
	if m.VocabSize() > initial {
		t.Fatalf("vocab size must not grow past initial when a non-whitelisted victim exists, got %d", m.VocabSize())
	}
}
