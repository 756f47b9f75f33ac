package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_EmbeddingText(t *testing.T) {
	entry := NewEntry(1, "Ada Lovelace", "Engineer", "Writes programs.", []string{"Go", "SQL"})

	want := "Name: Ada Lovelace\nTitle: Engineer\nSummary: Writes programs.\nSkills: Go, SQL"
	assert.Equal(t, want, entry.EmbeddingText())
}

func TestEntry_EmbeddingText_NoSkills(t *testing.T) {
	entry := NewEntry(2, "Grace", "Admiral", "Compilers.", nil)

	want := "Name: Grace\nTitle: Admiral\nSummary: Compilers.\nSkills: "
	assert.Equal(t, want, entry.EmbeddingText())
}

func TestEntry_EmbeddingText_Deterministic(t *testing.T) {
	a := NewEntry(3, "Sam", "Dev", "Backend.", []string{"Go"})
	b := NewEntry(3, "Sam", "Dev", "Backend.", []string{"Go"})

	assert.Equal(t, a.EmbeddingText(), b.EmbeddingText())
}

func TestEntry_SkillsAreCopied(t *testing.T) {
	skills := []string{"Go", "SQL"}
	entry := NewEntry(4, "Sam", "Dev", "Backend.", skills)

	skills[0] = "mutated"
	assert.Equal(t, []string{"Go", "SQL"}, entry.Skills())

	got := entry.Skills()
	got[1] = "mutated"
	assert.Equal(t, []string{"Go", "SQL"}, entry.Skills())
}

func TestEmbeddedEntry_EmbeddingIsCopied(t *testing.T) {
	entry := NewEntry(5, "Sam", "Dev", "Backend.", nil)
	vec := []float64{0.1, 0.2}
	embedded := NewEmbeddedEntry(entry, vec)

	vec[0] = 99
	assert.Equal(t, []float64{0.1, 0.2}, embedded.Embedding())
}
