package bpe

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// wireModel mirrors the top-level "model" object of a HuggingFace
// tokenizer.json file.
type wireModel struct {
	Type   string          `json:"type"`
	Vocab  map[string]int32 `json:"vocab"`
	Merges json.RawMessage `json:"merges"`
}

type wireAddedToken struct {
	ID      TokenId `json:"id"`
	Content string  `json:"content"`
	Special bool    `json:"special"`
}

// FromString parses a HuggingFace BPE tokenizer.json document held in
// memory. It is the core parse path; Load wraps it with file IO.
func FromString(data []byte) (*Model, error) {
	const op = "bpe.FromString"

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, newError(KindParse, op, err)
	}

	rawModel, ok := top["model"]
	if !ok {
		return nil, newError(KindParse, op, fmt.Errorf("missing top-level \"model\" field"))
	}

	var wm wireModel
	if err := json.Unmarshal(rawModel, &wm); err != nil {
		return nil, newError(KindParse, op, err)
	}
	if wm.Type != "BPE" {
		return nil, newError(KindUnsupported, op, fmt.Errorf("model.type %q is not BPE", wm.Type))
	}

	merges, err := parseMerges(wm.Merges)
	if err != nil {
		return nil, newError(KindParse, op, err)
	}

	var added []wireAddedToken
	if rawAdded, ok := top["added_tokens"]; ok {
		if err := json.Unmarshal(rawAdded, &added); err != nil {
			return nil, newError(KindParse, op, err)
		}
	}

	m := &Model{
		Vocab:  wm.Vocab,
		Merges: merges,
		Opaque: make(map[string]rawJSON),
	}
	if m.Vocab == nil {
		m.Vocab = make(map[string]TokenId)
	}
	for k, v := range top {
		if k == "model" || k == "added_tokens" {
			continue
		}
		m.Opaque[k] = v
	}

	// Build the Index from model.vocab and model.merges first, before any
	// added_tokens entry is inserted, so AllocateID below
	// hands out ids past every id model.vocab already claims.
	m.Index = buildIndex(m)

	// added_tokens entries are cross-checked against the vocab: a file
	// may legitimately list a special token here without also carrying
	// it in model.vocab (some HuggingFace exports do this), and loading
	// such a file must not leave that id dangling outside usedIDs — the
	// very next AllocateID call would hand it out a second time. Insert
	// via AddTokenAtomic so the id actually backing the special entry is
	// the one the Index just registered, not whatever id the file
	// happened to record.
	for _, a := range added {
		id, inserted := m.AddTokenAtomic(a.Content)
		if inserted && IsSpecial(a.Content) {
			// AddTokenAtomic already appended a Special entry for this
			// token via insertVocab; avoid recording it twice.
			continue
		}
		m.Special = append(m.Special, SpecialToken{ID: id, Content: a.Content, Special: a.Special})
	}

	return m, nil
}

// parseMerges accepts both HuggingFace merge encodings: an array of
// "left right" strings, or an array of [left, right] pairs.
func parseMerges(raw json.RawMessage) ([]Merge, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var asStrings []string
	if err := json.Unmarshal(raw, &asStrings); err == nil {
		merges := make([]Merge, len(asStrings))
		for i, s := range asStrings {
			idx := strings.IndexByte(s, ' ')
			if idx < 0 {
				return nil, fmt.Errorf("merge %q lacks a space", s)
			}
			merges[i] = Merge{Left: s[:idx], Right: s[idx+1:]}
		}
		return merges, nil
	}

	var asPairs [][]string
	if err := json.Unmarshal(raw, &asPairs); err != nil {
		return nil, fmt.Errorf("model.merges is neither []string nor [][2]string: %w", err)
	}
	merges := make([]Merge, len(asPairs))
	for i, p := range asPairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("merge entry %d has %d elements, want 2", i, len(p))
		}
		merges[i] = Merge{Left: p[0], Right: p[1]}
	}
	return merges, nil
}

// Load reads and parses the tokenizer JSON file at path.
func Load(path string) (*Model, error) {
	const op = "bpe.Load"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(KindIO, op, err)
	}
	m, err := FromString(data)
	if err != nil {
		return nil, err
	}
	return m, nil
}
