package bpe

import (
	"fmt"

	"github.com/emirpasic/gods/v2/trees/binaryheap"
)

// ShrinkCandidate names a token eligible for shrink removal.
type ShrinkCandidate struct {
	Token     string
	ID        TokenId
	CharLen   int
}

// FindTokensToShrink returns up to count candidates meeting all of:
// not a special token, character length >= 2, id >= minID. Candidates
// are ordered by (character length DESC, id DESC) — the longest,
// newest tokens are preferred removal targets, since they are the
// least likely to be load-bearing primitives.
//
// The full candidate set is materialized and pushed through a max
// binary heap rather than a full sort, since callers typically want a
// small top-N out of a large vocabulary.
//
// A negative count is a typed InvalidArgument error rather than a
// silent empty result; count == 0 is a legitimate no-op request.
func (m *Model) FindTokensToShrink(count int, minID TokenId) ([]ShrinkCandidate, error) {
	if count < 0 {
		return nil, newError(KindInvalidArgument, "bpe.FindTokensToShrink",
			fmt.Errorf("count %d is negative", count))
	}
	if count == 0 {
		return nil, nil
	}

	less := func(a, b ShrinkCandidate) int {
		if a.CharLen != b.CharLen {
			if a.CharLen > b.CharLen {
				return -1
			}
			return 1
		}
		if a.ID != b.ID {
			if a.ID > b.ID {
				return -1
			}
			return 1
		}
		return 0
	}
	heap := binaryheap.NewWith(less)

	for tok, id := range m.Vocab {
		if id < minID || IsSpecial(tok) {
			continue
		}
		l := CharLen(tok)
		if l < 2 {
			continue
		}
		heap.Push(ShrinkCandidate{Token: tok, ID: id, CharLen: l})
	}

	out := make([]ShrinkCandidate, 0, count)
	for len(out) < count {
		c, ok := heap.Pop()
		if !ok {
			break
		}
		out = append(out, c)
	}
	return out, nil
}

// ShrinkResult reports the outcome of Shrink.
type ShrinkResult struct {
	InitialVocabSize  int
	FinalVocabSize    int
	InitialMergeCount int
	FinalMergeCount   int
	TokensRemovedCount int // root removals attempted and present at removal time
	TotalTokensRemoved int // includes cascade
	TotalMergesRemoved int
}

// Shrink selects up to count candidates via FindTokensToShrink and
// removes each in order. A removal may cascade and eliminate later
// candidates before their turn comes — RemoveToken on an already-gone
// token is a harmless no-op, which is how TokensRemovedCount can come
// out lower than count.
func (m *Model) Shrink(count int, minID TokenId) (ShrinkResult, error) {
	res := ShrinkResult{
		InitialVocabSize:  m.VocabSize(),
		InitialMergeCount: m.MergesCount(),
	}

	candidates, err := m.FindTokensToShrink(count, minID)
	if err != nil {
		return ShrinkResult{}, err
	}
	for _, c := range candidates {
		removal := m.RemoveToken(c.Token)
		if len(removal.RemovedTokens) == 0 {
			continue
		}
		res.TokensRemovedCount++
		res.TotalTokensRemoved += len(removal.RemovedTokens)
		res.TotalMergesRemoved += len(removal.RemovedMerges)
	}

	res.FinalVocabSize = m.VocabSize()
	res.FinalMergeCount = m.MergesCount()
	return res, nil
}
