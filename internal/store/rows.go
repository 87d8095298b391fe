package store

import (
	"database/sql"

	"github.com/utakatalp/match-predictor/internal/league"
)

// Row types mirror the source columns; NULL-able columns use sql.Null types.

type countryRow struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type leagueRow struct {
	ID        int64  `db:"id"`
	CountryID int64  `db:"country_id"`
	Name      string `db:"name"`
}

type teamRow struct {
	ID        int64          `db:"id"`
	APIID     int64          `db:"team_api_id"`
	LongName  string         `db:"team_long_name"`
	ShortName sql.NullString `db:"team_short_name"`
}

func (r teamRow) team() league.Team {
	return league.Team{ID: r.ID, APIID: r.APIID, LongName: r.LongName, ShortName: r.ShortName.String}
}

type playerRow struct {
	ID    int64  `db:"id"`
	APIID int64  `db:"player_api_id"`
	Name  string `db:"player_name"`
}

type playerAttributesRow struct {
	PlayerAPIID   int64         `db:"player_api_id"`
	Date          string        `db:"date"`
	OverallRating sql.NullInt64 `db:"overall_rating"`
}

const matchColumns = "id, match_api_id, country_id, league_id, season, stage, date, home_team_api_id, away_team_api_id, home_team_goal, away_team_goal, home_player_1, home_player_2, home_player_3, home_player_4, home_player_5, home_player_6, home_player_7, home_player_8, home_player_9, home_player_10, home_player_11, away_player_1, away_player_2, away_player_3, away_player_4, away_player_5, away_player_6, away_player_7, away_player_8, away_player_9, away_player_10, away_player_11"

type matchRow struct {
	ID            int64         `db:"id"`
	APIID         int64         `db:"match_api_id"`
	CountryID     int64         `db:"country_id"`
	LeagueID      int64         `db:"league_id"`
	Season        string        `db:"season"`
	Stage         int           `db:"stage"`
	Date          string        `db:"date"`
	HomeTeamAPIID int64         `db:"home_team_api_id"`
	AwayTeamAPIID int64         `db:"away_team_api_id"`
	HomeGoals     int           `db:"home_team_goal"`
	AwayGoals     int           `db:"away_team_goal"`
	HomePlayer1   sql.NullInt64 `db:"home_player_1"`
	HomePlayer2   sql.NullInt64 `db:"home_player_2"`
	HomePlayer3   sql.NullInt64 `db:"home_player_3"`
	HomePlayer4   sql.NullInt64 `db:"home_player_4"`
	HomePlayer5   sql.NullInt64 `db:"home_player_5"`
	HomePlayer6   sql.NullInt64 `db:"home_player_6"`
	HomePlayer7   sql.NullInt64 `db:"home_player_7"`
	HomePlayer8   sql.NullInt64 `db:"home_player_8"`
	HomePlayer9   sql.NullInt64 `db:"home_player_9"`
	HomePlayer10  sql.NullInt64 `db:"home_player_10"`
	HomePlayer11  sql.NullInt64 `db:"home_player_11"`
	AwayPlayer1   sql.NullInt64 `db:"away_player_1"`
	AwayPlayer2   sql.NullInt64 `db:"away_player_2"`
	AwayPlayer3   sql.NullInt64 `db:"away_player_3"`
	AwayPlayer4   sql.NullInt64 `db:"away_player_4"`
	AwayPlayer5   sql.NullInt64 `db:"away_player_5"`
	AwayPlayer6   sql.NullInt64 `db:"away_player_6"`
	AwayPlayer7   sql.NullInt64 `db:"away_player_7"`
	AwayPlayer8   sql.NullInt64 `db:"away_player_8"`
	AwayPlayer9   sql.NullInt64 `db:"away_player_9"`
	AwayPlayer10  sql.NullInt64 `db:"away_player_10"`
	AwayPlayer11  sql.NullInt64 `db:"away_player_11"`
}

func (r matchRow) match() (league.Match, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return league.Match{}, err
	}
	m := league.Match{
		ID:            r.ID,
		APIID:         r.APIID,
		CountryID:     r.CountryID,
		LeagueID:      r.LeagueID,
		Season:        r.Season,
		Stage:         r.Stage,
		Date:          date,
		HomeTeamAPIID: r.HomeTeamAPIID,
		AwayTeamAPIID: r.AwayTeamAPIID,
		HomeGoals:     r.HomeGoals,
		AwayGoals:     r.AwayGoals,
	}
	home := [league.LineupSize]sql.NullInt64{
		r.HomePlayer1,
		r.HomePlayer2,
		r.HomePlayer3,
		r.HomePlayer4,
		r.HomePlayer5,
		r.HomePlayer6,
		r.HomePlayer7,
		r.HomePlayer8,
		r.HomePlayer9,
		r.HomePlayer10,
		r.HomePlayer11,
	}
	away := [league.LineupSize]sql.NullInt64{
		r.AwayPlayer1,
		r.AwayPlayer2,
		r.AwayPlayer3,
		r.AwayPlayer4,
		r.AwayPlayer5,
		r.AwayPlayer6,
		r.AwayPlayer7,
		r.AwayPlayer8,
		r.AwayPlayer9,
		r.AwayPlayer10,
		r.AwayPlayer11,
	}
	for i := range home {
		m.HomePlayers[i] = home[i].Int64
		m.AwayPlayers[i] = away[i].Int64
	}
	return m, nil
}

// lineupArgs returns the 22 slot values of m as insert arguments, NULL for empty slots.
func lineupArgs(m league.Match) []any {
	args := make([]any, 0, 2*league.LineupSize)
	for _, ids := range [][league.LineupSize]int64{m.HomePlayers, m.AwayPlayers} {
		for _, id := range ids {
			if id == league.NoPlayer {
				args = append(args, nil)
				continue
			}
			args = append(args, id)
		}
	}
	return args
}
