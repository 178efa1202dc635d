// Package bpe implements the consistency-preserving editor for
// Byte-Pair-Encoding tokenizer descriptions: a vocabulary of token
// strings to ids plus an ordered list of merge rules.
package bpe

import "strings"

// TokenId is a tokenizer vocabulary id. Ids are unique within a Model
// but need not be contiguous.
type TokenId = int32

// Merge is an ordered pair of token strings whose output is their
// concatenation.
type Merge struct {
	Left  string
	Right string
}

// Result is the concatenation left⧺right that this merge produces.
func (m Merge) Result() string {
	return m.Left + m.Right
}

// SpecialToken mirrors the `added_tokens` entries HuggingFace tokenizer
// files carry alongside the vocab.
type SpecialToken struct {
	ID      TokenId
	Content string
	Special bool
}

// Model is the in-memory tokenizer: vocab, merges, special-token list,
// and the opaque top-level JSON fields the core never interprets.
type Model struct {
	Vocab   map[string]TokenId
	Merges  []Merge
	Special []SpecialToken

	// Opaque holds every top-level field besides model/added_tokens,
	// captured verbatim on load and re-emitted unchanged.
	Opaque map[string]rawJSON

	*Index
}

// rawJSON is a thin alias kept local to avoid leaking encoding/json
// into callers that only want the graph-editing surface.
type rawJSON = []byte

// IsSpecial reports whether tok's surface form marks it as a special
// token: `<...>` or `[...]`. This is a pure function of the string, not
// a lookup, so it stays correct as tokens are added and removed.
func IsSpecial(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	return (strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">")) ||
		(strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]"))
}

// CharLen returns the Unicode-scalar length of tok, the unit spec.md
// uses throughout (never byte length, never UTF-16 code units).
func CharLen(tok string) int {
	return len([]rune(tok))
}

// NewModel builds an empty, valid Model — useful for tests and for
// programmatic construction outside the load/save path.
func NewModel() *Model {
	m := &Model{
		Vocab:  make(map[string]TokenId),
		Opaque: make(map[string]rawJSON),
	}
	m.Index = buildIndex(m)
	return m
}

// HasToken reports whether tok is present in the vocabulary.
func (m *Model) HasToken(tok string) bool {
	_, ok := m.Vocab[tok]
	return ok
}

// IDOf returns the id of tok and whether it was found.
func (m *Model) IDOf(tok string) (TokenId, bool) {
	id, ok := m.Vocab[tok]
	return id, ok
}

// TokenOf returns the token string holding id, if any. This is O(n) in
// vocab size since Vocab is indexed by string, not by id; callers doing
// this repeatedly should build their own reverse map.
func (m *Model) TokenOf(id TokenId) (string, bool) {
	for tok, tid := range m.Vocab {
		if tid == id {
			return tok, true
		}
	}
	return "", false
}

// VocabSize returns the number of tokens currently in the vocabulary.
func (m *Model) VocabSize() int {
	return len(m.Vocab)
}

// MergesCount returns the number of merge rules currently in the
// sequence.
func (m *Model) MergesCount() int {
	return len(m.Merges)
}

// GetVocab returns a defensive copy of the vocabulary map.
func (m *Model) GetVocab() map[string]TokenId {
	out := make(map[string]TokenId, len(m.Vocab))
	for k, v := range m.Vocab {
		out[k] = v
	}
	return out
}

// GetMerges returns a defensive copy of the merge sequence.
func (m *Model) GetMerges() []Merge {
	out := make([]Merge, len(m.Merges))
	copy(out, m.Merges)
	return out
}

// GetSingleCharTokens returns every token of Unicode-scalar length 1,
// each paired with its id.
func (m *Model) GetSingleCharTokens() []TokenAndID {
	var out []TokenAndID
	for tok, id := range m.Vocab {
		if CharLen(tok) == 1 {
			out = append(out, TokenAndID{Token: tok, ID: id})
		}
	}
	return out
}

// GetTokensByLength returns every token whose Unicode-scalar length is
// in [minLen, maxLen], each paired with its id.
func (m *Model) GetTokensByLength(minLen, maxLen int) []TokenAndID {
	var out []TokenAndID
	for tok, id := range m.Vocab {
		l := CharLen(tok)
		if l >= minLen && l <= maxLen {
			out = append(out, TokenAndID{Token: tok, ID: id})
		}
	}
	return out
}

// TokenAndID pairs a token string with its vocabulary id.
type TokenAndID struct {
	Token string
	ID    TokenId
}
