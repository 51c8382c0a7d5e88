// Package notes holds the free-text notes shown beside the canvas.
package notes

import (
	"errors"
	"strings"
	"time"
)

// TimestampLayout is the display format stored with each note.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

var (
	// ErrEmpty is returned when a note has no text after trimming.
	ErrEmpty = errors.New("notes: empty note")

	// ErrNotFound is returned when deleting an unknown note id.
	ErrNotFound = errors.New("notes: note not found")
)

// Note is a single user note.
type Note struct {
	ID        int
	Text      string
	CreatedAt string // Display-formatted creation time
}

// Book is an ordered list of notes, newest first.
type Book struct {
	notes  []Note
	nextID int
}

// NewBook creates an empty notebook.
func NewBook() *Book {
	return &Book{}
}

// Restore replaces the contents with persisted notes and id counter.
// The counter is raised past any existing id so ids stay unique.
func (b *Book) Restore(notes []Note, nextID int) {
	b.notes = make([]Note, 0, len(notes))
	for _, n := range notes {
		if strings.TrimSpace(n.Text) == "" {
			continue
		}
		b.notes = append(b.notes, n)
		if n.ID >= nextID {
			nextID = n.ID + 1
		}
	}
	b.nextID = max(0, nextID)
}

// Add trims text and prepends it as a new note.
func (b *Book) Add(text string, now time.Time) (Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, ErrEmpty
	}
	n := Note{
		ID:        b.nextID,
		Text:      text,
		CreatedAt: now.Format(TimestampLayout),
	}
	b.nextID++
	b.notes = append([]Note{n}, b.notes...)
	return n, nil
}

// Delete removes the note with the given id.
func (b *Book) Delete(id int) error {
	for i, n := range b.notes {
		if n.ID == id {
			b.notes = append(b.notes[:i], b.notes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Get returns the note with the given id.
func (b *Book) Get(id int) (Note, bool) {
	for _, n := range b.notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// List returns a copy of all notes, newest first.
func (b *Book) List() []Note {
	out := make([]Note, len(b.notes))
	copy(out, b.notes)
	return out
}

// Len returns the number of notes.
func (b *Book) Len() int { return len(b.notes) }

// NextID returns the id the next note will receive.
func (b *Book) NextID() int { return b.nextID }
