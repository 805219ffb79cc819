package notes

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

func newTestStore() *Store {
	s := NewStore()
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("note-%d", n)
	}
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func TestStore_Add(t *testing.T) {
	s := newTestStore()

	note, ok := s.Add("  intro starts  ", CategoryImportant, 65.7)
	if !ok {
		t.Fatal("Add() ok = false, want true")
	}
	if note.Content != "intro starts" {
		t.Errorf("note.Content = %q, want trimmed", note.Content)
	}
	if note.Timestamp != 65.7 {
		t.Errorf("note.Timestamp = %v, want 65.7", note.Timestamp)
	}
	if note.FormattedTime != "00:01:05" {
		t.Errorf("note.FormattedTime = %q, want 00:01:05", note.FormattedTime)
	}
	if note.Category != CategoryImportant {
		t.Errorf("note.Category = %q, want %q", note.Category, CategoryImportant)
	}
	if note.ID == "" {
		t.Error("note.ID is empty")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_Add_DefaultCategory(t *testing.T) {
	s := newTestStore()
	note, _ := s.Add("x", "", 1)
	if note.Category != CategoryGeneral {
		t.Errorf("note.Category = %q, want %q", note.Category, CategoryGeneral)
	}
}

func TestStore_Add_WhitespaceIgnored(t *testing.T) {
	s := newTestStore()
	s.Add("kept", CategoryGeneral, 1)

	if _, ok := s.Add("   ", CategoryGeneral, 5); ok {
		t.Fatal("Add() ok = true for whitespace content")
	}
	if _, ok := s.Add("", CategoryGeneral, 5); ok {
		t.Fatal("Add() ok = true for empty content")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_AddThenDeleteRestoresState(t *testing.T) {
	s := newTestStore()
	s.Add("first", CategoryGeneral, 1)
	s.Add("second", CategoryQuestion, 2)

	before := s.Snapshot()
	note, ok := s.Add("temporary", CategoryCode, 3)
	if !ok {
		t.Fatal("Add() ok = false")
	}
	s.Delete(note.ID)

	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("store after add+delete = %+v, want %+v", after, before)
	}
}

func TestStore_DeleteMissing(t *testing.T) {
	s := newTestStore()
	s.Add("a", CategoryGeneral, 1)

	if s.Delete("nope") {
		t.Error("Delete() = true for unknown id")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_DeletePreservesOrder(t *testing.T) {
	s := newTestStore()
	a, _ := s.Add("a", CategoryGeneral, 1)
	b, _ := s.Add("b", CategoryGeneral, 2)
	c, _ := s.Add("c", CategoryGeneral, 3)

	s.Delete(b.ID)

	got := s.Snapshot()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Fatalf("Snapshot() = %+v, want [a c]", got)
	}
}

func TestStore_Filter(t *testing.T) {
	s := newTestStore()
	s.Add("ABC in general", CategoryGeneral, 1)
	s.Add("what is abc?", CategoryQuestion, 2)
	s.Add("unrelated question", CategoryQuestion, 3)
	s.Add("xabcx", CategoryQuestion, 4)

	t.Run("empty search returns all in order", func(t *testing.T) {
		got := s.Filter("", "")
		if !reflect.DeepEqual(got, s.Snapshot()) {
			t.Fatalf("Filter(\"\", \"\") = %+v, want all notes", got)
		}
	})

	t.Run("search and category", func(t *testing.T) {
		got := s.Filter("abc", CategoryQuestion)
		if len(got) != 2 {
			t.Fatalf("Filter() returned %d notes, want 2", len(got))
		}
		if got[0].Content != "what is abc?" || got[1].Content != "xabcx" {
			t.Fatalf("Filter() order = %q, %q", got[0].Content, got[1].Content)
		}
		for _, n := range got {
			if n.Category != CategoryQuestion {
				t.Errorf("note %q has category %q", n.Content, n.Category)
			}
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := s.Filter("aBc", "")
		if len(got) != 3 {
			t.Fatalf("Filter() returned %d notes, want 3", len(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := s.Filter("zzz", ""); len(got) != 0 {
			t.Fatalf("Filter() returned %d notes, want 0", len(got))
		}
	})
}

func TestStore_Categories_FirstSeenOrder(t *testing.T) {
	s := newTestStore()
	s.Add("a", CategoryQuestion, 1)
	s.Add("b", CategoryGeneral, 2)
	s.Add("c", CategoryQuestion, 3)
	s.Add("d", CategoryCode, 4)

	want := []string{CategoryQuestion, CategoryGeneral, CategoryCode}
	if got := s.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
}

func TestStore_Reset(t *testing.T) {
	s := newTestStore()
	s.Add("a", CategoryGeneral, 1)
	s.Reset()

	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
	if got := s.Categories(); len(got) != 0 {
		t.Errorf("Categories() after Reset = %v, want empty", got)
	}
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := newTestStore()
	s.Add("a", CategoryGeneral, 1)

	snap := s.Snapshot()
	snap[0].Content = "mutated"

	if n, _ := s.Get(snap[0].ID); n.Content != "a" {
		t.Fatalf("store note mutated through snapshot: %q", n.Content)
	}
}
