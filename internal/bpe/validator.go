package bpe

// InvalidMerge names a merge rule whose output is absent from the
// vocab: position, plus its two operands.
type InvalidMerge struct {
	Index int
	Left  string
	Right string
}

// ValidationResult reports the outcome of validate_merges. It is data,
// not an error: an invalid merge is a property of the input, not a
// failure of the call.
type ValidationResult struct {
	ValidCount   int
	InvalidCount int
	Invalid      []InvalidMerge
}

// ValidateMerges enumerates merge rules whose concatenated output is
// missing from the vocab. The returned Invalid list preserves merge-
// sequence order.
func (m *Model) ValidateMerges() ValidationResult {
	var res ValidationResult
	for i, mg := range m.Merges {
		if _, ok := m.Vocab[mg.Result()]; ok {
			res.ValidCount++
			continue
		}
		res.InvalidCount++
		res.Invalid = append(res.Invalid, InvalidMerge{Index: i, Left: mg.Left, Right: mg.Right})
	}
	return res
}

// RemoveInvalidMerges deletes every merge whose output is absent from
// the vocab and returns the count removed. Because many positions
// change at once, the Index is rebuilt rather than patched.
func (m *Model) RemoveInvalidMerges() int {
	result := m.ValidateMerges()
	if result.InvalidCount == 0 {
		return 0
	}

	remove := make(map[int]struct{}, len(result.Invalid))
	for _, inv := range result.Invalid {
		remove[inv.Index] = struct{}{}
	}

	kept := make([]Merge, 0, len(m.Merges)-len(remove))
	for i, mg := range m.Merges {
		if _, drop := remove[i]; drop {
			continue
		}
		kept = append(kept, mg)
	}
	m.Merges = kept
	rebuildIndex(m)
	return result.InvalidCount
}
