package fieldstr

import "testing"

func TestFieldTrackerInsertDedups(t *testing.T) {
	ft := NewFieldTracker()

	id1 := ft.Insert("7")
	id2 := ft.Insert("7")
	if id1 != id2 {
		t.Fatalf("same decimal should reuse id: %d != %d", id1, id2)
	}

	id3 := ft.Insert("8")
	if id3 == id1 {
		t.Fatalf("distinct decimals should get distinct ids")
	}

	if got, ok := ft.Get(id1); !ok || got != "7" {
		t.Fatalf("Get(%d) = %q, %v; want \"7\", true", id1, got, ok)
	}
	if ft.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ft.Len())
	}
}

func TestFieldTrackerGetOutOfRange(t *testing.T) {
	ft := NewFieldTracker()
	ft.Insert("1")
	if _, ok := ft.Get(5); ok {
		t.Fatalf("Get on an unassigned id should report ok=false")
	}
	if _, ok := ft.Get(-1); ok {
		t.Fatalf("Get on a negative id should report ok=false")
	}
}

func TestFieldTrackerCloneIsIndependent(t *testing.T) {
	ft := NewFieldTracker()
	ft.Insert("1")

	clone := ft.Clone()
	clone.Insert("2")

	if ft.Len() != 1 {
		t.Fatalf("mutating the clone must not affect the original, got Len()=%d", ft.Len())
	}
}

func TestFieldTrackerMergeWithRemap(t *testing.T) {
	a := NewFieldTracker()
	a.Insert("1") // id 0
	a.Insert("2") // id 1

	b := NewFieldTracker()
	b.Insert("2") // id 0 in b, overlaps with a
	b.Insert("3") // id 1 in b, new to a

	remap := a.MergeWithRemap(b)
	if len(remap) != 2 {
		t.Fatalf("remap length = %d, want 2", len(remap))
	}
	if remap[0] != 1 { // "2" already has id 1 in a
		t.Fatalf("remap[0] = %d, want 1 (existing id of \"2\" in a)", remap[0])
	}
	if remap[1] != 2 { // "3" is newly appended
		t.Fatalf("remap[1] = %d, want 2 (new id of \"3\" in a)", remap[1])
	}
	if a.Len() != 3 {
		t.Fatalf("a.Len() after merge = %d, want 3", a.Len())
	}
}

// TestStringTableDenseFirstSeenIDs verifies invariant 4: for N LogStr
// occurrences with K distinct strings, ids are dense in [0,K) and equal
// strings map to equal ids.
func TestStringTableDenseFirstSeenIDs(t *testing.T) {
	st := NewStringTable()

	occurrences := []string{"a", "b", "a", "c", "b", "a"}
	ids := make([]int, len(occurrences))
	for i, s := range occurrences {
		ids[i] = st.Intern(s)
	}

	wantFirstID := map[string]int{"a": 0, "b": 1, "c": 2}
	for i, s := range occurrences {
		if ids[i] != wantFirstID[s] {
			t.Fatalf("Intern(%q) at occurrence %d = %d, want %d", s, i, ids[i], wantFirstID[s])
		}
	}

	if st.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 distinct strings", st.Len())
	}
	for id := 0; id < st.Len(); id++ {
		if _, ok := st.Get(id); !ok {
			t.Fatalf("id %d should be present in a dense [0,Len()) space", id)
		}
	}
}
