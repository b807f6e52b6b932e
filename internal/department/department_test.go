package department

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Category
	}{
		{"basic subject", "Mathematics", Basic},
		{"specialized subject", "Computer Science", Specialized},
		{"case insensitive", "mAtHeMaTiCs", Basic},
		{"surrounding whitespace", "  Physics  ", Basic},
		{"unknown department", "Astrology", Unrecognized},
		{"empty string", "", Unrecognized},
		{"partial match is not a match", "Applied Mathematics", Unrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.in))
		})
	}
}

func TestWeight(t *testing.T) {
	assert.Equal(t, 1, Weight(Basic))
	assert.Equal(t, 2, Weight(Specialized))
	// Unrecognized departments count like specialized ones in totals.
	assert.Equal(t, 2, Weight(Unrecognized))
}

func TestNameSetsAreDisjoint(t *testing.T) {
	for name := range basicSubjects {
		_, overlap := specializedSubjects[name]
		assert.False(t, overlap, "department %q appears in both sets", name)
	}
}
