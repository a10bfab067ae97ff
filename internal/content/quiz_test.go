package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUseLetterLabels(t *testing.T) {
	assert.False(t, UseLetterLabels([]string{"Paris", "Berlin"}))
	assert.True(t, UseLetterLabels([]string{"Paris", strings.Repeat("x", 26)}))
	// Граница — ровно 25 символов ещё помещается на кнопку
	assert.False(t, UseLetterLabels([]string{strings.Repeat("x", 25)}))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, Labels(3))
}

func TestEvaluateAnswer(t *testing.T) {
	options := []string{"Paris", "Berlin", "Madrid"}

	tests := []struct {
		name       string
		submitted  string
		correct    string
		usedLabels bool
		want       bool
	}{
		{"exact match", "Paris", "Paris", false, true},
		{"case-insensitive", "pArIs", "Paris", false, true},
		{"whitespace trimmed", "  Paris \n", "Paris", false, true},
		{"wrong answer", "Berlin", "Paris", false, false},
		{"no partial credit", "Par", "Paris", false, false},
		{"lowercase letter maps to option", "a", "Paris", true, true},
		{"uppercase letter maps to option", "C", "Madrid", true, true},
		{"letter of wrong option", "b", "Paris", true, false},
		{"letter out of range stays literal", "D", "Paris", true, false},
		{"full text still accepted with labels", "paris", "Paris", true, true},
		{"letter ignored without labels", "a", "Paris", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateAnswer(tt.submitted, tt.correct, options, tt.usedLabels)
			assert.Equal(t, tt.want, got)
		})
	}
}
