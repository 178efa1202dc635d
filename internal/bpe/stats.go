package bpe

import "sort"

// LengthCount pairs a character length with how many vocab tokens have
// that length.
type LengthCount struct {
	CharLength int
	Count      int
}

// Stats summarizes the shape of a vocabulary.
type Stats struct {
	VocabSize        int
	MergesCount       int
	SingleCharCount   int
	SpecialTokenCount int
	MinID             TokenId
	MaxID             TokenId
	LengthDistribution []LengthCount
}

// GetStats computes vocab size, merges count, single-char and special
// counts, the id range, and the character-length distribution sorted
// ascending by length.
func (m *Model) GetStats() Stats {
	s := Stats{
		VocabSize:  m.VocabSize(),
		MergesCount: m.MergesCount(),
	}

	byLength := map[int]int{}
	first := true
	for tok, id := range m.Vocab {
		l := CharLen(tok)
		byLength[l]++
		if l == 1 {
			s.SingleCharCount++
		}
		if IsSpecial(tok) {
			s.SpecialTokenCount++
		}
		if first || id < s.MinID {
			s.MinID = id
		}
		if first || id > s.MaxID {
			s.MaxID = id
		}
		first = false
	}

	lengths := make([]int, 0, len(byLength))
	for l := range byLength {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	for _, l := range lengths {
		s.LengthDistribution = append(s.LengthDistribution, LengthCount{CharLength: l, Count: byLength[l]})
	}

	return s
}
