package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func season() []Match {
	return []Match{
		fixture(1, 1, teamA, teamB, 2, 1),
		fixture(2, 2, teamC, teamA, 0, 0),
		fixture(3, 3, teamB, teamA, 3, 0),
		fixture(4, 4, teamB, teamC, 1, 2),
		fixture(5, 5, teamA, teamC, 4, 1),
		fixture(6, 6, teamA, teamB, 1, 1),
	}
}

func TestBuildFeatures(t *testing.T) {
	matches := season()
	f := BuildFeatures(matches[5], matches, DefaultWindows())

	// A before day 6: 2-1 B, 0-0 C, 0-3 B, 4-1 C -> 6 for, 5 against, 2 wins
	// B before day 6: 1-2 A, 3-0 A, 1-2 C -> 5 for, 4 against, 1 win
	// head to head: matches 3 and 1 -> A won 1, B won 1
	assert.Equal(t, Features{
		MatchAPIID:              6,
		LeagueID:                1729,
		HomeTeamGoalsDifference: 1,
		AwayTeamGoalsDifference: 1,
		GamesWonHomeTeam:        2,
		GamesWonAwayTeam:        1,
		GamesAgainstWon:         1,
		GamesAgainstLost:        1,
	}, f)
}

func TestBuildFeatures_Windows(t *testing.T) {
	matches := season()
	f := BuildFeatures(matches[5], matches, Windows{Form: 1, HeadToHead: 1})

	// A's last: 4-1 C; B's last: 1-2 C; last h2h: 3-0 for B
	assert.Equal(t, 3, f.HomeTeamGoalsDifference)
	assert.Equal(t, -1, f.AwayTeamGoalsDifference)
	assert.Equal(t, 1, f.GamesWonHomeTeam)
	assert.Equal(t, 0, f.GamesWonAwayTeam)
	assert.Equal(t, 0, f.GamesAgainstWon)
	assert.Equal(t, 1, f.GamesAgainstLost)
}

func TestBuildFeatures_NoHistory(t *testing.T) {
	matches := season()
	f := BuildFeatures(matches[0], matches, DefaultWindows())
	assert.Equal(t, Features{MatchAPIID: 1, LeagueID: 1729}, f)
}

func TestBuildFeatures_Idempotent(t *testing.T) {
	matches := season()
	before := append([]Match(nil), matches...)

	first := BuildFeatures(matches[4], matches, DefaultWindows())
	second := BuildFeatures(matches[4], matches, DefaultWindows())

	assert.Equal(t, first, second)
	assert.Equal(t, before, matches)
}

func TestFeatureBuilder_MatchesBuildFeatures(t *testing.T) {
	matches := season()
	b := NewFeatureBuilder(matches, DefaultWindows())
	for _, m := range matches {
		assert.Equal(t, BuildFeatures(m, matches, DefaultWindows()), b.Build(m), "match %d", m.APIID)
	}
}

func TestFeatures_Values(t *testing.T) {
	f := Features{HomeTeamGoalsDifference: -2, GamesAgainstLost: 3}
	v := f.Values()
	require.Len(t, v, len(FeatureColumns()))
	assert.Equal(t, -2.0, v[0])
	assert.Equal(t, 3.0, v[5])
}
