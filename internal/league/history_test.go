package league

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	teamA int64 = 10
	teamB int64 = 20
	teamC int64 = 30
)

func day(n int) time.Time {
	return time.Date(2015, time.August, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func fixture(id int64, d int, home, away int64, hg, ag int) Match {
	return Match{
		APIID:         id,
		LeagueID:      1729,
		Date:          day(d),
		HomeTeamAPIID: home,
		AwayTeamAPIID: away,
		HomeGoals:     hg,
		AwayGoals:     ag,
	}
}

func ids(matches []Match) []int64 {
	out := make([]int64, len(matches))
	for i, m := range matches {
		out[i] = m.APIID
	}
	return out
}

func threeMatches() []Match {
	return []Match{
		fixture(1, 1, teamA, teamB, 2, 1),
		fixture(2, 2, teamA, teamB, 1, 1),
		fixture(3, 3, teamA, teamB, 0, 3),
	}
}

func TestHistory_ThreeMatchScenario(t *testing.T) {
	matches := threeMatches()

	got := BeforeDate(ByParticipant(matches, teamA), matches[2].Date, 10)
	require.Equal(t, []int64{2, 1}, ids(got))

	assert.Equal(t, 1, WinsFor(got, teamA))
	assert.Equal(t, 3, GoalsFor(got, teamA))
	assert.Equal(t, 2, GoalsAgainst(got, teamA))
}

func TestByParticipant(t *testing.T) {
	matches := []Match{
		fixture(1, 1, teamA, teamB, 0, 0),
		fixture(2, 2, teamB, teamC, 0, 0),
		fixture(3, 3, teamC, teamA, 0, 0),
	}

	assert.Equal(t, []int64{1, 3}, ids(ByParticipant(matches, teamA)))
	assert.Equal(t, []int64{2, 3}, ids(ByParticipant(matches, teamC)))
	assert.Empty(t, ByParticipant(matches, 99))
}

func TestBeforeDate(t *testing.T) {
	matches := []Match{
		fixture(1, 5, teamA, teamB, 0, 0),
		fixture(2, 1, teamA, teamB, 0, 0),
		fixture(3, 9, teamA, teamB, 0, 0),
		fixture(4, 3, teamA, teamB, 0, 0),
		fixture(5, 3, teamA, teamB, 0, 0),
	}

	tests := []struct {
		name   string
		cutoff time.Time
		limit  int
		want   []int64
	}{
		{name: "sorted descending", cutoff: day(10), limit: 10, want: []int64{3, 1, 4, 5, 2}},
		{name: "truncated to limit", cutoff: day(10), limit: 2, want: []int64{3, 1}},
		{name: "strictly before cutoff", cutoff: day(5), limit: 10, want: []int64{4, 5, 2}},
		{name: "equal dates keep input order", cutoff: day(4), limit: 1, want: []int64{4}},
		{name: "nothing qualifies", cutoff: day(1), limit: 10, want: []int64{}},
		{name: "zero limit", cutoff: day(10), limit: 0, want: []int64{}},
		{name: "negative limit", cutoff: day(10), limit: -3, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BeforeDate(matches, tt.cutoff, tt.limit)
			assert.Equal(t, tt.want, ids(got))
			assert.LessOrEqual(t, len(got), max(tt.limit, 0))
			for i, m := range got {
				assert.True(t, m.Date.Before(tt.cutoff))
				if i > 0 {
					assert.False(t, m.Date.After(got[i-1].Date))
				}
			}
		})
	}
}

func TestBeforeDate_DoesNotReorderInput(t *testing.T) {
	matches := []Match{
		fixture(1, 1, teamA, teamB, 0, 0),
		fixture(2, 2, teamA, teamB, 0, 0),
	}
	BeforeDate(matches, day(5), 10)
	assert.Equal(t, []int64{1, 2}, ids(matches))
}

func TestBetweenOpponents(t *testing.T) {
	matches := []Match{
		fixture(1, 1, teamA, teamB, 0, 0),
		fixture(2, 2, teamB, teamA, 0, 0),
		fixture(3, 3, teamA, teamC, 0, 0),
		fixture(4, 4, teamC, teamB, 0, 0),
	}

	assert.Equal(t, []int64{1, 2}, ids(BetweenOpponents(matches, teamA, teamB)))
	assert.Equal(t, []int64{1, 2}, ids(BetweenOpponents(matches, teamB, teamA)))
	assert.Equal(t, []int64{3}, ids(BetweenOpponents(matches, teamC, teamA)))
	assert.Empty(t, BetweenOpponents(matches, teamA, teamA))
}

func TestGoals_BothRoles(t *testing.T) {
	matches := []Match{
		fixture(1, 1, teamA, teamB, 2, 1),
		fixture(2, 2, teamB, teamA, 4, 3),
	}

	assert.Equal(t, 5, GoalsFor(matches, teamA))
	assert.Equal(t, 5, GoalsAgainst(matches, teamA))
	assert.Equal(t, 5, GoalsFor(matches, teamB))
	assert.Equal(t, 1, WinsFor(matches, teamA))
	assert.Equal(t, 1, WinsFor(matches, teamB))
}

func TestGoals_SingleOpponentSymmetry(t *testing.T) {
	matches := threeMatches()
	total := 0
	for _, m := range matches {
		total += m.HomeGoals + m.AwayGoals
	}
	assert.Equal(t, total, GoalsFor(matches, teamA)+GoalsAgainst(matches, teamA))
	assert.Equal(t, GoalsFor(matches, teamA), GoalsAgainst(matches, teamB))
}
