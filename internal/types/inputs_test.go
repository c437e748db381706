package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintEntries(t *testing.T) {
	thirty := 30.0

	tests := []struct {
		name string
		in   Constraints
		want []Entry
	}{
		{"empty", Constraints{}, nil},
		{"blank strings skipped", Constraints{CuisineMood: "  ", Diet: ""}, nil},
		{
			"fixed order",
			Constraints{Effort: "minimal", TimeMins: &thirty, SpiceLevel: "mild"},
			[]Entry{{"timeMins", "30"}, {"spiceLevel", "mild"}, {"effort", "minimal"}},
		},
		{"chat input", Constraints{ChatInput: "something cozy"}, []Entry{{"chatInput", "something cozy"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Entries())
		})
	}
}

func TestParseConstraints(t *testing.T) {
	c, err := ParseConstraints("")
	require.NoError(t, err)
	assert.Empty(t, c.Entries())

	c, err = ParseConstraints(`{"timeMins": 45.5, "diet": "vegetarian"}`)
	require.NoError(t, err)
	require.NotNil(t, c.TimeMins)
	assert.Equal(t, 45.5, *c.TimeMins)
	assert.Equal(t, []Entry{{"timeMins", "45.5"}, {"diet", "vegetarian"}}, c.Entries())

	_, err = ParseConstraints("{broken")
	assert.Error(t, err)
}
