// Package dataset holds the domain model for profile dataset entries.
package dataset

import (
	"fmt"
	"strings"
)

// Entry is a single profile record from an input dataset.
// Entries are immutable once constructed.
type Entry struct {
	id      int64
	name    string
	title   string
	summary string
	skills  []string
}

// NewEntry creates a new Entry.
func NewEntry(id int64, name, title, summary string, skills []string) Entry {
	s := make([]string, len(skills))
	copy(s, skills)
	return Entry{
		id:      id,
		name:    name,
		title:   title,
		summary: summary,
		skills:  s,
	}
}

// ID returns the entry identifier, unique within its dataset.
func (e Entry) ID() int64 { return e.id }

// Name returns the profile name.
func (e Entry) Name() string { return e.name }

// Title returns the profile title.
func (e Entry) Title() string { return e.title }

// Summary returns the free-text summary.
func (e Entry) Summary() string { return e.summary }

// Skills returns the ordered skill list (copy).
func (e Entry) Skills() []string {
	s := make([]string, len(e.skills))
	copy(s, e.skills)
	return s
}

// EmbeddingText returns the canonical textual representation of the entry
// that is sent to the embedding service. The field order and label format
// are fixed: the same entry must always produce byte-identical text so that
// runs are reproducible.
func (e Entry) EmbeddingText() string {
	return fmt.Sprintf("Name: %s\nTitle: %s\nSummary: %s\nSkills: %s",
		e.name, e.title, e.summary, strings.Join(e.skills, ", "))
}

// EmbeddedEntry is an Entry together with the embedding vector produced for
// its canonical text. Created once by the embedding stage and never mutated.
type EmbeddedEntry struct {
	entry     Entry
	embedding []float64
}

// NewEmbeddedEntry creates a new EmbeddedEntry.
func NewEmbeddedEntry(entry Entry, embedding []float64) EmbeddedEntry {
	vec := make([]float64, len(embedding))
	copy(vec, embedding)
	return EmbeddedEntry{
		entry:     entry,
		embedding: vec,
	}
}

// Entry returns the underlying dataset entry.
func (e EmbeddedEntry) Entry() Entry { return e.entry }

// Embedding returns the embedding vector (copy).
func (e EmbeddedEntry) Embedding() []float64 {
	vec := make([]float64, len(e.embedding))
	copy(vec, e.embedding)
	return vec
}
