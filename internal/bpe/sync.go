package bpe

import (
	"fmt"
	"sort"
)

// SyncResult reports the counts produced by a sync operation: how many
// tokens were imported from the source, how many root removals were
// applied to make room, and the cascade totals those removals produced.
type SyncResult struct {
	TokensAddedCount   int
	TokensRemovedCount int
	TotalTokensRemoved int
	TotalMergesRemoved int
}

// SyncSingleChars imports every single-character token present in
// source but absent from m, making room by shrinking m first. Removal
// budget is pre-computed before any addition happens, so the shrink
// pass never removes a token that sync is about to add.
func (m *Model) SyncSingleChars(source *Model, minID TokenId) SyncResult {
	var missing []string
	for tok := range source.Vocab {
		if CharLen(tok) == 1 && !m.HasToken(tok) {
			missing = append(missing, tok)
		}
	}
	sort.Strings(missing)

	res := m.applyRemovalBudget(len(missing), minID)

	for _, tok := range missing {
		if _, added := m.AddTokenAtomic(tok); added {
			res.TokensAddedCount++
		}
	}

	m.ReindexVocab()
	return res
}

// SyncShortTokens generalizes SyncSingleChars to an arbitrary character-
// length window [minLen, maxLen]. Additions prefer reusing the source's
// exact merge rule over re-synthesizing one: when the source already
// has a producer rule (A, B) for a missing token and both A and B are
// (or will be, after earlier additions in this call) present in m, that
// exact rule is appended instead of running AddToken's synthesis.
// Addition order is by character length ascending, then by source id
// ascending, so that dependencies are always added before dependents.
func (m *Model) SyncShortTokens(source *Model, minLen, maxLen int, minID TokenId) (SyncResult, error) {
	if minLen > maxLen {
		return SyncResult{}, newError(KindInvalidArgument, "bpe.SyncShortTokens",
			fmt.Errorf("min_len %d > max_len %d", minLen, maxLen))
	}

	type candidate struct {
		tok      string
		sourceID TokenId
		length   int
	}
	var missing []candidate
	for tok, id := range source.Vocab {
		l := CharLen(tok)
		if l < minLen || l > maxLen {
			continue
		}
		if m.HasToken(tok) {
			continue
		}
		missing = append(missing, candidate{tok: tok, sourceID: id, length: l})
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].length != missing[j].length {
			return missing[i].length < missing[j].length
		}
		return missing[i].sourceID < missing[j].sourceID
	})

	res := m.applyRemovalBudget(len(missing), minID)

	for _, c := range missing {
		if m.HasToken(c.tok) {
			continue
		}
		if pos, ok := source.ProducerOf(c.tok); ok {
			mg := source.Merges[pos]
			if m.HasToken(mg.Left) && m.HasToken(mg.Right) {
				m.insertVocab(c.tok)
				m.appendMerge(mg)
				res.TokensAddedCount++
				continue
			}
		}
		m.AddToken(c.tok)
		res.TokensAddedCount++
	}

	m.ReindexVocab()
	return res, nil
}

// applyRemovalBudget pre-selects up to n shrink candidates and removes
// them before any addition happens, so an addition never collides with
// a removal still in flight. n is always derived from a len() call by
// its callers, so it is never negative.
func (m *Model) applyRemovalBudget(n int, minID TokenId) SyncResult {
	var res SyncResult
	if n == 0 {
		return res
	}
	candidates, _ := m.FindTokensToShrink(n, minID)
	for _, c := range candidates {
		removal := m.RemoveToken(c.Token)
		if len(removal.RemovedTokens) == 0 {
			continue
		}
		res.TokensRemovedCount++
		res.TotalTokensRemoved += len(removal.RemovedTokens)
		res.TotalMergesRemoved += len(removal.RemovedMerges)
	}
	return res
}
