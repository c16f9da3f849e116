// Package fieldstr implements the two interning tables threaded through
// lowering: the FieldTracker for big-integer field constants and the
// StringTable for log-call string literals.
//
// Both tables are plain types, not guarded by a mutex: a body's lowering
// owns the table it is handed, updates it in place and returns it, so that a
// caller lowering bodies concurrently gives each body its own table and
// folds it into a program-wide one as an explicit merge step rather than
// through shared-memory synchronization during lowering itself.
package fieldstr

import "slices"

// FieldTracker interns big-integer field constants, keyed by their decimal
// string representation so the tracker stays arithmetic-agnostic: it never
// parses or bounds-checks the values it stores.
type FieldTracker struct {
	byID  []string
	index map[string]int
}

// NewFieldTracker returns an empty tracker.
func NewFieldTracker() *FieldTracker {
	return &FieldTracker{index: make(map[string]int)}
}

// Insert interns decimal and returns its constant id, reusing an existing
// id when the same decimal string was already interned.
func (t *FieldTracker) Insert(decimal string) int {
	if id, ok := t.index[decimal]; ok {
		return id
	}
	id := len(t.byID)
	t.byID = append(t.byID, decimal)
	t.index[decimal] = id
	return id
}

// Get returns the decimal string for a previously interned id.
func (t *FieldTracker) Get(id int) (string, bool) {
	if id < 0 || id >= len(t.byID) {
		return "", false
	}
	return t.byID[id], true
}

// Len reports how many distinct constants have been interned.
func (t *FieldTracker) Len() int { return len(t.byID) }

// Entries returns the table's decimal strings in id order, for callers
// that need to persist or otherwise walk the whole table (internal/artifact).
// The returned slice aliases the tracker's own backing array and must not
// be mutated.
func (t *FieldTracker) Entries() []string { return t.byID }

// FromEntries rebuilds a FieldTracker from a decimal-string slice in id
// order, the inverse of Entries, used when restoring a tracker previously
// persisted by internal/artifact.
func FromEntries(entries []string) *FieldTracker {
	t := &FieldTracker{byID: slices.Clone(entries), index: make(map[string]int, len(entries))}
	for id, decimal := range t.byID {
		t.index[decimal] = id
	}
	return t
}

// Clone returns an independent copy, used when a body is handed its own
// working table derived from a program-wide one.
func (t *FieldTracker) Clone() *FieldTracker {
	c := &FieldTracker{
		byID:  slices.Clone(t.byID),
		index: make(map[string]int, len(t.index)),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	return c
}

// Merge folds other into t, preserving t's existing ids and appending any
// decimal string from other that t does not already know about. It does
// NOT renumber other's ids; callers that need a remapping (e.g. to rewrite
// already-emitted Value(BigInt, cid) nodes from other's id space) should
// use MergeWithRemap.
func (t *FieldTracker) Merge(other *FieldTracker) {
	for _, decimal := range other.byID {
		t.Insert(decimal)
	}
}

// MergeWithRemap folds other into t and returns a slice mapping other's
// ids to t's ids, so a caller can rewrite IR produced against other.
func (t *FieldTracker) MergeWithRemap(other *FieldTracker) []int {
	remap := make([]int, len(other.byID))
	for oldID, decimal := range other.byID {
		remap[oldID] = t.Insert(decimal)
	}
	return remap
}

// StringTable interns log-call string literals. Ids are dense and
// first-seen: the id assigned to a new string is always the table's size
// at the moment of insertion, mirroring the source compiler's
// `len() as next id` rule exactly (see translate_log in the original
// lowering core) — this is required by callers that assume a contiguous
// [0,K) id space.
type StringTable struct {
	byID  []string
	index map[string]int
}

// NewStringTable returns an empty table.
func NewStringTable() *StringTable {
	return &StringTable{index: make(map[string]int)}
}

// Intern returns s's dense id, assigning a new one (equal to the current
// table size) the first time s is seen.
func (t *StringTable) Intern(s string) int {
	if id, ok := t.index[s]; ok {
		return id
	}
	id := len(t.byID)
	t.byID = append(t.byID, s)
	t.index[s] = id
	return id
}

// Get returns the string for a previously interned id.
func (t *StringTable) Get(id int) (string, bool) {
	if id < 0 || id >= len(t.byID) {
		return "", false
	}
	return t.byID[id], true
}

// Len reports how many distinct strings have been interned.
func (t *StringTable) Len() int { return len(t.byID) }

// Entries returns the table's strings in id order; see FieldTracker.Entries.
func (t *StringTable) Entries() []string { return t.byID }

// StringTableFromEntries rebuilds a StringTable from a string slice in id
// order, the inverse of StringTable.Entries.
func StringTableFromEntries(entries []string) *StringTable {
	t := &StringTable{byID: slices.Clone(entries), index: make(map[string]int, len(entries))}
	for id, s := range t.byID {
		t.index[s] = id
	}
	return t
}

// Clone returns an independent copy.
func (t *StringTable) Clone() *StringTable {
	c := &StringTable{
		byID:  slices.Clone(t.byID),
		index: make(map[string]int, len(t.index)),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	return c
}

// Merge folds other into t without renumbering t's existing ids.
func (t *StringTable) Merge(other *StringTable) {
	for _, s := range other.byID {
		t.Intern(s)
	}
}

// MergeWithRemap folds other into t and returns a slice mapping other's
// ids to t's ids.
func (t *StringTable) MergeWithRemap(other *StringTable) []int {
	remap := make([]int, len(other.byID))
	for oldID, s := range other.byID {
		remap[oldID] = t.Intern(s)
	}
	return remap
}
