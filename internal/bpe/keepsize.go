package bpe

// KeepSizeResult reports the outcome of AddTokensKeepSize.
type KeepSizeResult struct {
	TokensAdded    int
	TokensRemoved  int
	FinalVocabSize int
}

// AddTokensKeepSize adds tokens (skipping any already present), then
// removes surplus tokens to bring vocab size back down to its value
// before the call. Tokens in whitelist, and any token added during
// this call, are never chosen as removal victims.
//
// The removal budget is computed once for the whole net delta (which
// can exceed len(tokens), since char_chain synthesis creates
// intermediate prefixes) rather than per added token — cheaper, and it
// matches spec.md's batch-then-trim design rather than a per-token
// greedy loop.
//
// Failing to reach the target size — because every remaining candidate
// is whitelisted, single-char, or special — is reported honestly in
// FinalVocabSize rather than treated as an error.
func (m *Model) AddTokensKeepSize(tokens []string, whitelist []string) (KeepSizeResult, error) {
	initial := m.VocabSize()

	var toAdd []string
	for _, t := range tokens {
		if !m.HasToken(t) {
			toAdd = append(toAdd, t)
		}
	}

	added := map[string]struct{}{}
	tokensAdded := 0
	for _, t := range toAdd {
		result := m.AddToken(t)
		if !result.Added {
			continue
		}
		tokensAdded++
		added[t] = struct{}{}
		for _, a := range result.AddedTokens {
			added[a.Token] = struct{}{}
		}
	}

	protected := map[string]struct{}{}
	for _, w := range whitelist {
		protected[w] = struct{}{}
	}
	for t := range added {
		protected[t] = struct{}{}
	}

	tokensRemoved := 0
	for m.VocabSize() > initial {
		delta := m.VocabSize() - initial
		candidates, err := m.candidatesExcluding(delta, protected)
		if err != nil {
			return KeepSizeResult{}, err
		}
		if len(candidates) == 0 {
			break // no more removable candidates; stop honestly
		}

		progressed := false
		for _, c := range candidates {
			if m.VocabSize() <= initial {
				break
			}
			removal := m.RemoveToken(c)
			if len(removal.RemovedTokens) == 0 {
				continue
			}
			tokensRemoved++
			progressed = true
		}
		if !progressed {
			break
		}
	}

	return KeepSizeResult{
		TokensAdded:    tokensAdded,
		TokensRemoved:  tokensRemoved,
		FinalVocabSize: m.VocabSize(),
	}, nil
}

// candidatesExcluding selects up to want shrink candidates that are not
// in excluded, re-selecting from a larger pool as needed since
// FindTokensToShrink itself has no notion of a protected set.
func (m *Model) candidatesExcluding(want int, excluded map[string]struct{}) ([]string, error) {
	pool, err := m.FindTokensToShrink(m.VocabSize(), 0)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, want)
	for _, c := range pool {
		if len(out) >= want {
			break
		}
		if _, skip := excluded[c.Token]; skip {
			continue
		}
		out = append(out, c.Token)
	}
	return out, nil
}
