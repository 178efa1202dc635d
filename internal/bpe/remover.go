package bpe

import "sort"

// RemovalResult reports what a cascade removal actually deleted.
// RemovedTokens has root first, then the rest in discovery order.
// RemovedMerges is in ascending original-position order.
type RemovalResult struct {
	RootToken     string
	RemovedTokens []string
	RemovedMerges []Merge
}

// RemoveToken computes the dependency closure of root and deletes it:
// every merge that reads root, every token that becomes unproducible
// as a result, and the merge that produced root itself. Single-char
// and special tokens survive even if their producer merge is removed,
// since they are independently rooted in the vocab.
//
// If root is absent, RemoveToken is a no-op and returns an empty
// result — this is the NotFound case, signaled via the result rather
// than an error per spec.
func (m *Model) RemoveToken(root string) RemovalResult {
	res := RemovalResult{RootToken: root}
	if !m.HasToken(root) {
		return res
	}

	toRemoveTokens := map[string]struct{}{root: {}}
	order := []string{root}
	toRemoveMerges := map[int]struct{}{}

	worklist := []string{root}
	for len(worklist) > 0 {
		t := worklist[0]
		worklist = worklist[1:]

		for i := range m.UsersOf(t) {
			toRemoveMerges[i] = struct{}{}
			mg := m.Merges[i]
			out := mg.Result()
			if _, already := toRemoveTokens[out]; already {
				continue
			}
			producerPos, hasProducer := m.ProducerOf(out)
			if !hasProducer || producerPos != i {
				continue
			}
			if CharLen(out) == 1 || IsSpecial(out) {
				continue
			}
			toRemoveTokens[out] = struct{}{}
			order = append(order, out)
			worklist = append(worklist, out)
		}

		if pos, ok := m.ProducerOf(t); ok {
			toRemoveMerges[pos] = struct{}{}
		}
	}

	mergePositions := make([]int, 0, len(toRemoveMerges))
	for i := range toRemoveMerges {
		mergePositions = append(mergePositions, i)
	}
	sort.Ints(mergePositions)

	removedMerges := make([]Merge, len(mergePositions))
	for i, pos := range mergePositions {
		removedMerges[i] = m.Merges[pos]
	}

	kept := make([]Merge, 0, len(m.Merges)-len(mergePositions))
	for i, mg := range m.Merges {
		if _, drop := toRemoveMerges[i]; drop {
			continue
		}
		kept = append(kept, mg)
	}
	m.Merges = kept

	for tok := range toRemoveTokens {
		delete(m.Vocab, tok)
	}
	m.Special = filterSpecial(m.Special, toRemoveTokens)

	rebuildIndex(m)

	res.RemovedTokens = order
	res.RemovedMerges = removedMerges
	return res
}

// RemoveTokens applies RemoveToken to each token in order, returning
// one RemovalResult per input token.
func (m *Model) RemoveTokens(tokens []string) []RemovalResult {
	out := make([]RemovalResult, len(tokens))
	for i, t := range tokens {
		out[i] = m.RemoveToken(t)
	}
	return out
}

func filterSpecial(special []SpecialToken, removed map[string]struct{}) []SpecialToken {
	if len(special) == 0 {
		return special
	}
	kept := make([]SpecialToken, 0, len(special))
	for _, s := range special {
		if _, drop := removed[s.Content]; drop {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
