package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		home, away int
		want       Outcome
	}{
		{2, 1, Win},
		{5, 0, Win},
		{0, 3, Defeat},
		{1, 2, Defeat},
		{0, 0, Draw},
		{3, 3, Draw},
	}
	for _, tt := range tests {
		r := Label(fixture(42, 1, teamA, teamB, tt.home, tt.away))
		assert.Equal(t, int64(42), r.MatchAPIID)
		assert.Equal(t, tt.want, r.Label, "%d-%d", tt.home, tt.away)
	}
}

func TestParseOutcome(t *testing.T) {
	for _, o := range Outcomes() {
		got, err := ParseOutcome(string(o))
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := ParseOutcome("win")
	assert.Error(t, err)
}
