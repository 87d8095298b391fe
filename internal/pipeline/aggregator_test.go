package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/utakatalp/match-predictor/internal/league"
)

const (
	chelsea    int64 = 8455
	sunderland int64 = 8472
	southamp   int64 = 8466
)

func day(n int) time.Time {
	return time.Date(2015, time.August, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func fixture(id int64, leagueID int64, d int, home, away int64, hg, ag int) league.Match {
	m := league.Match{
		ID:            id,
		APIID:         id,
		CountryID:     leagueID,
		LeagueID:      leagueID,
		Season:        "2015/2016",
		Stage:         d,
		Date:          day(d),
		HomeTeamAPIID: home,
		AwayTeamAPIID: away,
		HomeGoals:     hg,
		AwayGoals:     ag,
	}
	for i := 0; i < league.LineupSize; i++ {
		m.HomePlayers[i] = home*100 + int64(i)
		m.AwayPlayers[i] = away*100 + int64(i)
	}
	return m
}

func players() ([]league.Player, []league.PlayerAttributes) {
	var ps []league.Player
	var attrs []league.PlayerAttributes
	for _, team := range []int64{chelsea, sunderland, southamp} {
		for i := 0; i < league.LineupSize; i++ {
			id := team*100 + int64(i)
			ps = append(ps, league.Player{ID: id, APIID: id, Name: "player"})
			attrs = append(attrs, league.PlayerAttributes{PlayerAPIID: id, Date: day(0), OverallRating: 70 + i})
		}
	}
	return ps, attrs
}

func relations() *league.Relations {
	ps, attrs := players()
	return &league.Relations{
		Countries: []league.Country{{ID: 1729, Name: "England"}, {ID: 21518, Name: "Spain"}},
		Leagues: []league.League{
			{ID: 1729, CountryID: 1729, Name: "England Premier League"},
			{ID: 21518, CountryID: 21518, Name: "Spain LIGA BBVA"},
		},
		Teams: []league.Team{
			{ID: 1, APIID: chelsea, LongName: "Chelsea"},
			{ID: 2, APIID: sunderland, LongName: "Sunderland"},
			{ID: 3, APIID: southamp, LongName: "Southampton"},
		},
		Players:          ps,
		PlayerAttributes: attrs,
		Matches: []league.Match{
			fixture(1, 1729, 1, chelsea, sunderland, 2, 1),
			fixture(2, 1729, 2, southamp, chelsea, 0, 0),
			fixture(3, 1729, 3, sunderland, southamp, 3, 0),
			fixture(4, 21518, 4, chelsea, southamp, 1, 2),
			fixture(5, 1729, 5, sunderland, chelsea, 1, 1),
		},
	}
}

func TestEnrich(t *testing.T) {
	rel := relations()
	a := New(rel, WithLogger(zaptest.NewLogger(t)))

	got, err := a.Enrich()
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Equal(t, "England", got[0].CountryName)
	assert.Equal(t, "England Premier League", got[0].LeagueName)
	assert.Equal(t, "Chelsea", got[0].HomeTeamName)
	assert.Equal(t, "Sunderland", got[0].AwayTeamName)
	assert.Equal(t, "Spain LIGA BBVA", got[3].LeagueName)
	assert.Equal(t, "Chelsea 2 - 1 Sunderland", got[0].ScoreLine())
	assert.Empty(t, got[0].HomePlayerNames[0])
	assert.Equal(t, relations().Matches, rel.Matches)
}

func TestEnrich_DanglingKeyAborts(t *testing.T) {
	rel := relations()
	rel.Matches = append(rel.Matches, fixture(6, 1729, 6, chelsea, 9999, 0, 0))

	got, err := New(rel).Enrich()
	assert.Nil(t, got)
	assert.ErrorIs(t, err, league.ErrNotFound)
	assert.ErrorContains(t, err, "enriching match 6")
}

func TestEnrich_StrictKeys(t *testing.T) {
	rel := relations()
	rel.Teams = append(rel.Teams, league.Team{ID: 4, APIID: chelsea, LongName: "Chelsea FC"})

	got, err := New(rel).Enrich()
	require.NoError(t, err)
	assert.Equal(t, "Chelsea", got[0].HomeTeamName)

	_, err = New(rel, WithStrictKeys()).Enrich()
	assert.ErrorIs(t, err, league.ErrAmbiguousKey)
}

func TestEnrich_PlayerNames(t *testing.T) {
	rel := relations()
	rel.Players[0].Name = "Petr Cech"
	rel.Matches[0].AwayPlayers[3] = league.NoPlayer

	got, err := New(rel, WithPlayerNames()).Enrich()
	require.NoError(t, err)
	assert.Equal(t, "Petr Cech", got[0].HomePlayerNames[0])
	assert.Empty(t, got[0].AwayPlayerNames[3])

	rel.Matches[1].HomePlayers[0] = 42
	_, err = New(rel, WithPlayerNames()).Enrich()
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestFeatures_ParallelMatchesSerial(t *testing.T) {
	rel := relations()
	want := make([]league.Features, len(rel.Matches))
	for i, m := range rel.Matches {
		want[i] = league.BuildFeatures(m, rel.Matches, league.DefaultWindows())
	}

	for _, workers := range []int{1, 2, 3, 16} {
		got, err := New(rel, WithWorkers(workers)).Features(context.Background(), rel.Matches)
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestFeatures_DuplicateMatch(t *testing.T) {
	rel := relations()
	matches := append(rel.Matches, rel.Matches[0])

	_, err := New(rel).Features(context.Background(), matches)
	assert.ErrorIs(t, err, ErrDuplicateMatch)
}

func TestFeatures_Cancelled(t *testing.T) {
	rel := relations()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(rel).Features(ctx, rel.Matches)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRatings(t *testing.T) {
	rel := relations()
	got, err := New(rel, WithWorkers(2)).Ratings(context.Background(), rel.Matches)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, r := range got {
		assert.Equal(t, rel.Matches[i].APIID, r.MatchAPIID)
		assert.True(t, r.Complete())
	}
	assert.Equal(t, 70, got[0].Slots[0].Rating)
	assert.Equal(t, 80, got[0].Slots[21].Rating)
}

func TestLabels(t *testing.T) {
	got := Labels(relations().Matches)
	want := []league.Outcome{league.Win, league.Draw, league.Win, league.Defeat, league.Draw}
	for i, r := range got {
		assert.Equal(t, want[i], r.Label)
		assert.Equal(t, int64(i+1), r.MatchAPIID)
	}
}
