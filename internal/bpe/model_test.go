package bpe

import "testing"

func TestIsSpecial(t *testing.T) {
	cases := map[string]bool{
		"<s>":      true,
		"<pad>":    true,
		"[CLS]":    true,
		"[SEP]":    true,
		"hello":    false,
		"<broken":  false,
		"broken>":  false,
		"<":        false,
		"a":        false,
	}
	for tok, want := range cases {
		if got := IsSpecial(tok); got != want {
			t.Errorf("IsSpecial(%q) = %v, want %v", tok, got, want)
		}
	}
}

func TestCharLen(t *testing.T) {
	cases := map[string]int{
		"":    0,
		"a":   1,
		"ab":  2,
		"ñ":   1,
		"日本": 2,
	}
	for tok, want := range cases {
		if got := CharLen(tok); got != want {
			t.Errorf("CharLen(%q) = %d, want %d", tok, got, want)
		}
	}
}

func TestNewModelIsEmptyButValid(t *testing.T) {
	m := NewModel()
	if m.VocabSize() != 0 {
		t.Fatalf("expected empty vocab, got size %d", m.VocabSize())
	}
	if m.MergesCount() != 0 {
		t.Fatalf("expected no merges, got %d", m.MergesCount())
	}
	if m.Index == nil {
		t.Fatalf("expected NewModel to build an index")
	}
}

func TestGetSingleCharTokens(t *testing.T) {
	m := NewModel()
	m.insertVocab("a")
	m.insertVocab("b")
	m.insertVocab("ab")

	single := m.GetSingleCharTokens()
	if len(single) != 2 {
		t.Fatalf("expected 2 single-char tokens, got %d", len(single))
	}
}

func TestGetTokensByLength(t *testing.T) {
	m := NewModel()
	m.insertVocab("a")
	m.insertVocab("ab")
	m.insertVocab("abc")

	got := m.GetTokensByLength(2, 3)
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens in [2,3], got %d", len(got))
	}
}
