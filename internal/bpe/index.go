package bpe

// Index holds the derived maps that make the vocab+merges graph
// queryable in O(1): which merge produces a token, which merges
// consume it, which ids are taken, and the next id to allocate.
//
// The Index is rebuilt wholesale after batch mutations (load, validator
// cleanup, cascade removal) and patched incrementally by single-token
// operations (add_token_atomic). Both paths must leave producer, users
// and usedIDs agreeing with the Model — invariant 4 in spec terms.
type Index struct {
	producer map[string]int            // token -> merge position
	users    map[string]map[int]struct{} // token -> set of merge positions
	usedIDs  map[TokenId]struct{}
	nextID   TokenId
}

func newIndex() *Index {
	return &Index{
		producer: make(map[string]int),
		users:    make(map[string]map[int]struct{}),
		usedIDs:  make(map[TokenId]struct{}),
		nextID:   0,
	}
}

// buildIndex rebuilds the Index from scratch against m's current
// Vocab and Merges. Duplicate producers are resolved last-writer-wins,
// per spec: a later merge at a higher position overwrites an earlier
// claim on the same output token. This tolerates pre-broken input so
// the Validator can report it rather than load failing outright.
func buildIndex(m *Model) *Index {
	idx := newIndex()

	for _, id := range m.Vocab {
		idx.usedIDs[id] = struct{}{}
		if id+1 > idx.nextID {
			idx.nextID = id + 1
		}
	}

	for i, mg := range m.Merges {
		idx.addUser(mg.Left, i)
		idx.addUser(mg.Right, i)
		idx.producer[mg.Result()] = i
	}

	return idx
}

func (idx *Index) addUser(tok string, pos int) {
	set, ok := idx.users[tok]
	if !ok {
		set = make(map[int]struct{})
		idx.users[tok] = set
	}
	set[pos] = struct{}{}
}

func (idx *Index) removeUser(tok string, pos int) {
	set, ok := idx.users[tok]
	if !ok {
		return
	}
	delete(set, pos)
	if len(set) == 0 {
		delete(idx.users, tok)
	}
}

// ProducerOf returns the merge position that produces tok, if any.
func (idx *Index) ProducerOf(tok string) (int, bool) {
	pos, ok := idx.producer[tok]
	return pos, ok
}

// UsersOf returns the set of merge positions that reference tok as
// either operand.
func (idx *Index) UsersOf(tok string) map[int]struct{} {
	return idx.users[tok]
}

// IsUsed reports whether id is currently held by some token.
func (idx *Index) IsUsed(id TokenId) bool {
	_, ok := idx.usedIDs[id]
	return ok
}

// AllocateID returns an unused id and advances the allocator.
// Freed ids are never recycled: allocation is strictly monotonic so
// that stale references held by downstream consumers stay detectable.
func (idx *Index) AllocateID() TokenId {
	id := idx.nextID
	idx.nextID++
	idx.usedIDs[id] = struct{}{}
	return id
}

// MaxUsedID returns the highest id currently in use, and false if no
// ids are in use.
func (idx *Index) MaxUsedID() (TokenId, bool) {
	if len(idx.usedIDs) == 0 {
		return 0, false
	}
	var max TokenId
	first := true
	for id := range idx.usedIDs {
		if first || id > max {
			max = id
			first = false
		}
	}
	return max, true
}

// releaseID marks id as free. It does not rewind nextID: ids are never
// recycled.
func (idx *Index) releaseID(id TokenId) {
	delete(idx.usedIDs, id)
}

// rebuildIndex discards m's current Index and replaces it with a fresh
// rebuild. Used after batch mutations that touch many merge positions
// at once, where patching producer/users incrementally would require
// re-deriving positions anyway. The previous nextID is carried over so
// that ids freed by the mutation are not handed out again.
func rebuildIndex(m *Model) {
	var prevNext TokenId
	if m.Index != nil {
		prevNext = m.Index.nextID
	}
	m.Index = buildIndex(m)
	if prevNext > m.Index.nextID {
		m.Index.nextID = prevNext
	}
}
