package bpe

// Method names the synthesis strategy add_token chose.
type Method string

const (
	MethodAlreadyExists Method = "already_exists"
	MethodSingleChar    Method = "single_char"
	MethodLongestPrefix Method = "longest_prefix"
	MethodCharChain     Method = "char_chain"
)

// AddResult reports the outcome of AddToken.
type AddResult struct {
	Token       string
	Added       bool
	Method      Method
	ID          TokenId
	AddedTokens []TokenAndID
	AddedMerges []Merge
}

// AddToken inserts tok into the vocab using the cheapest synthesis
// method that makes it producible, in this priority order:
//
//   - already_exists: tok is already in the vocab, no-op.
//   - single_char: tok is one Unicode scalar, no merge needed.
//   - longest_prefix: the longest proper prefix p of tok such that
//     both p and the remaining suffix are already in the vocab; one
//     merge (p, suffix) is appended.
//   - char_chain: otherwise, tok is built scalar by scalar, inserting
//     any missing intermediate prefix and chaining a merge for each.
//
// The suffix-must-also-be-in-vocab guard on longest_prefix is
// deliberate: a prefix match whose remaining suffix isn't itself a
// token falls through to char_chain rather than erroring.
func (m *Model) AddToken(tok string) AddResult {
	if m.HasToken(tok) {
		id, _ := m.IDOf(tok)
		return AddResult{Token: tok, Added: false, Method: MethodAlreadyExists, ID: id}
	}

	if CharLen(tok) == 1 {
		id := m.insertVocab(tok)
		return AddResult{
			Token:       tok,
			Added:       true,
			Method:      MethodSingleChar,
			ID:          id,
			AddedTokens: []TokenAndID{{Token: tok, ID: id}},
		}
	}

	if p, s, ok := m.longestPrefixSplit(tok); ok {
		id := m.insertVocab(tok)
		mg := Merge{Left: p, Right: s}
		m.appendMerge(mg)
		return AddResult{
			Token:       tok,
			Added:       true,
			Method:      MethodLongestPrefix,
			ID:          id,
			AddedTokens: []TokenAndID{{Token: tok, ID: id}},
			AddedMerges: []Merge{mg},
		}
	}

	return m.addCharChain(tok)
}

// longestPrefixSplit finds the longest proper prefix p of tok with
// both p and tok's remaining suffix already present in the vocab.
// Since prefix length determines p uniquely, ties are impossible.
func (m *Model) longestPrefixSplit(tok string) (prefix, suffix string, ok bool) {
	runes := []rune(tok)
	for k := len(runes) - 1; k >= 1; k-- {
		p := string(runes[:k])
		s := string(runes[k:])
		if m.HasToken(p) && m.HasToken(s) {
			return p, s, true
		}
	}
	return "", "", false
}

// addCharChain builds tok scalar by scalar: every missing single-char
// primitive is inserted, then every missing prefix is inserted with a
// chained merge against the next scalar. The final prefix is tok
// itself.
func (m *Model) addCharChain(tok string) AddResult {
	runes := []rune(tok)
	res := AddResult{Token: tok, Added: true, Method: MethodCharChain}

	for _, c := range runes {
		cs := string(c)
		if !m.HasToken(cs) {
			id := m.insertVocab(cs)
			res.AddedTokens = append(res.AddedTokens, TokenAndID{Token: cs, ID: id})
		}
	}

	prefix := string(runes[0])
	for k := 2; k <= len(runes); k++ {
		next := string(runes[k-1])
		newPrefix := prefix + next
		if !m.HasToken(newPrefix) {
			id := m.insertVocab(newPrefix)
			mg := Merge{Left: prefix, Right: next}
			m.appendMerge(mg)
			res.AddedTokens = append(res.AddedTokens, TokenAndID{Token: newPrefix, ID: id})
			res.AddedMerges = append(res.AddedMerges, mg)
		}
		prefix = newPrefix
	}

	id, _ := m.IDOf(tok)
	res.ID = id
	return res
}

// AddTokenAtomic inserts tok into the vocab (and the special list, if
// its surface matches the special pattern) without any merge
// synthesis. Returns false if tok was already present. Intended for
// callers that already know tok is special or otherwise externally
// justified — e.g. importing a reference tokenizer's single-char
// alphabet.
func (m *Model) AddTokenAtomic(tok string) (id TokenId, added bool) {
	if existing, ok := m.IDOf(tok); ok {
		return existing, false
	}
	id = m.insertVocab(tok)
	return id, true
}

// AddTokens applies AddToken to each token in order, preserving input
// order in the result slice.
func (m *Model) AddTokens(tokens []string) []AddResult {
	out := make([]AddResult, len(tokens))
	for i, t := range tokens {
		out[i] = m.AddToken(t)
	}
	return out
}

// insertVocab allocates an id for tok, inserts it into the vocab, and
// registers it as a special token if its surface form matches.
func (m *Model) insertVocab(tok string) TokenId {
	id := m.AllocateID()
	m.Vocab[tok] = id
	if IsSpecial(tok) {
		m.Special = append(m.Special, SpecialToken{ID: id, Content: tok, Special: true})
	}
	return id
}

// appendMerge appends mg to the merge sequence and updates the index
// in place: this is the one mutation path that patches the producer
// and users maps incrementally rather than rebuilding them, since it
// only ever adds one new position.
func (m *Model) appendMerge(mg Merge) {
	pos := len(m.Merges)
	m.Merges = append(m.Merges, mg)
	m.addUser(mg.Left, pos)
	m.addUser(mg.Right, pos)
	m.producer[mg.Result()] = pos
}
