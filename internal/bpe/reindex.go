package bpe

import "sort"

// GapReport summarizes how far the current id assignment is from a
// dense [0, vocabSize) range, without mutating anything.
type GapReport struct {
	HasGaps   bool
	TotalGaps int
	MinID     TokenId
	MaxID     TokenId
}

// CheckVocabGaps reports whether ids are densely packed. TotalGaps
// counts both the leading gap (MinID unused low ids) and the internal
// gaps between MinID and MaxID that the vocab doesn't occupy.
func (m *Model) CheckVocabGaps() GapReport {
	if m.VocabSize() == 0 {
		return GapReport{}
	}
	minID, _ := minUsedID(m.Vocab)
	maxID, _ := m.MaxUsedID()
	span := int(maxID-minID) + 1
	gaps := int(minID) + (span - m.VocabSize())
	return GapReport{
		HasGaps:   gaps > 0,
		TotalGaps: gaps,
		MinID:     minID,
		MaxID:     maxID,
	}
}

func minUsedID(vocab map[string]TokenId) (TokenId, bool) {
	var min TokenId
	first := true
	for _, id := range vocab {
		if first || id < min {
			min = id
			first = false
		}
	}
	return min, !first
}

// ReindexVocab renumbers ids to the dense range [0, vocabSize) while
// preserving any already-correct prefix: tokens are sorted by current
// id, and everything before the first position where id != index is
// left untouched. Merges reference tokens by string, so they require
// no update when ids change underneath them.
func (m *Model) ReindexVocab() {
	type entry struct {
		tok string
		id  TokenId
	}
	entries := make([]entry, 0, len(m.Vocab))
	for tok, id := range m.Vocab {
		entries = append(entries, entry{tok, id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	changed := false
	for i, e := range entries {
		want := TokenId(i)
		if e.id == want {
			continue
		}
		changed = true
		m.Vocab[e.tok] = want
		for j := range m.Special {
			if m.Special[j].Content == e.tok {
				m.Special[j].ID = want
			}
		}
	}
	if changed {
		rebuildIndex(m)
	}
}
