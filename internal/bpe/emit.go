package bpe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// ToString serializes m back into a HuggingFace tokenizer.json
// document: vocab sorted ascending by id (encoding/json would
// otherwise sort map keys lexically, which is not what the wire
// format wants), merges rejoined as "left right", every other
// top-level field passed through verbatim.
func (m *Model) ToString() ([]byte, error) {
	const op = "bpe.ToString"

	vocabJSON, err := marshalVocabByID(m.Vocab)
	if err != nil {
		return nil, newError(KindIO, op, err)
	}

	mergesJSON, err := json.Marshal(mergeStrings(m.Merges))
	if err != nil {
		return nil, newError(KindIO, op, err)
	}

	modelObj := map[string]json.RawMessage{
		"type":   json.RawMessage(`"BPE"`),
		"vocab":  vocabJSON,
		"merges": mergesJSON,
	}
	modelJSON, err := marshalOrdered(modelObj, []string{"type", "vocab", "merges"})
	if err != nil {
		return nil, newError(KindIO, op, err)
	}

	out := map[string]json.RawMessage{}
	for k, v := range m.Opaque {
		out[k] = v
	}
	out["model"] = modelJSON
	if len(m.Special) > 0 {
		addedJSON, err := json.Marshal(specialTokensToWire(m.Special))
		if err != nil {
			return nil, newError(KindIO, op, err)
		}
		out["added_tokens"] = addedJSON
	}

	order := orderedTopLevelKeys(out)
	return marshalOrdered(out, order)
}

// orderedTopLevelKeys puts model first, added_tokens second, then the
// rest of the opaque fields in a stable (sorted) order. Byte-for-byte
// field order of the original file is not a consistency requirement
// per spec.md's non-goals; this just keeps output deterministic.
func orderedTopLevelKeys(fields map[string]json.RawMessage) []string {
	order := []string{"model"}
	if _, ok := fields["added_tokens"]; ok {
		order = append(order, "added_tokens")
	}
	var rest []string
	for k := range fields {
		if k == "model" || k == "added_tokens" {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func marshalOrdered(fields map[string]json.RawMessage, order []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, k := range order {
		v, ok := fields[k]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalVocabByID writes vocab as a JSON object with keys in
// ascending-id order, since encoding/json would otherwise marshal a
// map[string]int32 with lexically sorted keys.
func marshalVocabByID(vocab map[string]TokenId) (json.RawMessage, error) {
	type entry struct {
		tok string
		id  TokenId
	}
	entries := make([]entry, 0, len(vocab))
	for tok, id := range vocab {
		entries = append(entries, entry{tok, id})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(e.tok)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", e.id)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func mergeStrings(merges []Merge) []string {
	out := make([]string, len(merges))
	for i, mg := range merges {
		out[i] = mg.Left + " " + mg.Right
	}
	return out
}

func specialTokensToWire(special []SpecialToken) []wireAddedToken {
	out := make([]wireAddedToken, len(special))
	for i, s := range special {
		out[i] = wireAddedToken{ID: s.ID, Content: s.Content, Special: s.Special}
	}
	return out
}

// Save serializes m and writes it to path.
func (m *Model) Save(path string) error {
	const op = "bpe.Save"
	data, err := m.ToString()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return newError(KindIO, op, err)
	}
	return nil
}
