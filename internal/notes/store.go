package notes

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store is an insertion-ordered collection of notes for one video.
// It is not safe for concurrent use; callers serialize access.
type Store struct {
	notes []Note
	newID func() string
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Add appends a note stamped at currentTime. Whitespace-only content is
// ignored and reported with ok == false.
func (s *Store) Add(content, category string, currentTime float64) (Note, bool) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Note{}, false
	}
	if currentTime < 0 {
		currentTime = 0
	}

	note := Note{
		ID:            s.newID(),
		Timestamp:     currentTime,
		FormattedTime: FormatTimestamp(currentTime),
		Content:       content,
		Category:      NormalizeCategory(category),
		CreatedAt:     s.now(),
	}
	s.notes = append(s.notes, note)
	return note, true
}

// Delete removes the note with the given id. Unknown ids are ignored.
func (s *Store) Delete(id string) bool {
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Get(id string) (Note, bool) {
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// Filter returns notes whose content contains search (case-insensitive) and,
// when category is non-empty, whose category matches exactly.
func (s *Store) Filter(search, category string) []Note {
	needle := strings.ToLower(search)
	out := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if category != "" && n.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(n.Content), needle) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Categories returns the distinct categories in use, in first-seen order.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, n := range s.notes {
		if seen[n.Category] {
			continue
		}
		seen[n.Category] = true
		out = append(out, n.Category)
	}
	return out
}

// Snapshot returns a copy of all notes in insertion order.
func (s *Store) Snapshot() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *Store) Len() int {
	return len(s.notes)
}

func (s *Store) Reset() {
	s.notes = nil
}
