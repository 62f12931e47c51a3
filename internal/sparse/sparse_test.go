package sparse

import (
	"testing"
)

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

	// Empty set
	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	// Insert and contain
	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Size() != 1 {
		t.Errorf("size should be 1, got %d", s.Size())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Size() != 4 {
		t.Errorf("size should be 4, got %d", s.Size())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSparseSet_InsertionOrder(t *testing.T) {
	s := NewSparseSet(100)
	s.Insert(5)
	s.Insert(2)
	s.Insert(8)
	s.Insert(1)
	s.Insert(2)

	expected := []uint32{5, 2, 8, 1}
	values := s.Values()
	if len(values) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(values))
	}
	for i, v := range expected {
		if values[i] != v {
			t.Errorf("values[%d] = %d, want %d", i, values[i], v)
		}
	}
}

func TestSparseSet_OutOfRange(t *testing.T) {
	s := NewSparseSet(4)
	if s.Contains(4) || s.Contains(1 << 20) {
		t.Error("values beyond capacity must not be reported as members")
	}
	if s.Capacity() != 4 {
		t.Errorf("capacity = %d, want 4", s.Capacity())
	}
}

func TestSparseSet_StaleSparseEntries(t *testing.T) {
	// After Clear the sparse array still holds old indices; membership
	// must be decided by the dense array alone.
	s := NewSparseSet(10)
	s.Insert(3)
	s.Insert(4)
	s.Clear()
	s.Insert(4)
	if s.Contains(3) {
		t.Error("stale sparse entry reported as member")
	}
	if !s.Contains(4) {
		t.Error("re-inserted value missing")
	}
}
