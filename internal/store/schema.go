package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/utakatalp/match-predictor/internal/league"
)

// Migrate creates the six relations if they do not exist. The column names
// follow the European soccer dataset so a Postgres mirror can be loaded with
// the same queries as the SQLite dataset file.
func (s *Store) Migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS "Country" (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
		`CREATE TABLE IF NOT EXISTS "League" (
		id         INTEGER PRIMARY KEY,
		country_id INTEGER NOT NULL,
		name       TEXT    NOT NULL
	)`,
		`CREATE TABLE IF NOT EXISTS "Team" (
		id              INTEGER PRIMARY KEY,
		team_api_id     INTEGER NOT NULL,
		team_long_name  TEXT    NOT NULL,
		team_short_name TEXT
	)`,
		`CREATE TABLE IF NOT EXISTS "Player" (
		id            INTEGER PRIMARY KEY,
		player_api_id INTEGER NOT NULL,
		player_name   TEXT    NOT NULL
	)`,
		`CREATE TABLE IF NOT EXISTS "Player_Attributes" (
		player_api_id  INTEGER NOT NULL,
		date           TEXT    NOT NULL,
		overall_rating INTEGER
	)`,
		`CREATE TABLE IF NOT EXISTS "Match" (
		id               INTEGER PRIMARY KEY,
		country_id       INTEGER NOT NULL,
		league_id        INTEGER NOT NULL,
		season           TEXT    NOT NULL,
		stage            INTEGER NOT NULL,
		date             TEXT    NOT NULL,
		match_api_id     INTEGER NOT NULL,
		home_team_api_id INTEGER NOT NULL,
		away_team_api_id INTEGER NOT NULL,
		home_team_goal   INTEGER NOT NULL,
		away_team_goal   INTEGER NOT NULL,
		home_player_1 INTEGER,
		home_player_2 INTEGER,
		home_player_3 INTEGER,
		home_player_4 INTEGER,
		home_player_5 INTEGER,
		home_player_6 INTEGER,
		home_player_7 INTEGER,
		home_player_8 INTEGER,
		home_player_9 INTEGER,
		home_player_10 INTEGER,
		home_player_11 INTEGER,
		away_player_1 INTEGER,
		away_player_2 INTEGER,
		away_player_3 INTEGER,
		away_player_4 INTEGER,
		away_player_5 INTEGER,
		away_player_6 INTEGER,
		away_player_7 INTEGER,
		away_player_8 INTEGER,
		away_player_9 INTEGER,
		away_player_10 INTEGER,
		away_player_11 INTEGER
	)`,
	}
	for _, q := range queries {
		if _, err := s.DB.Exec(q); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}
	return nil
}

// exec runs query once per argument list inside one transaction.
func (s *Store) exec(ctx context.Context, what, query string, args [][]any) error {
	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s tx: %w", what, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, s.DB.Rebind(query))
	if err != nil {
		return fmt.Errorf("preparing %s: %w", what, err)
	}
	defer stmt.Close()

	for _, a := range args {
		if _, err := stmt.ExecContext(ctx, a...); err != nil {
			return fmt.Errorf("inserting %s: %w", what, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s tx: %w", what, err)
	}
	return nil
}

func (s *Store) InsertCountries(ctx context.Context, countries []league.Country) error {
	args := make([][]any, len(countries))
	for i, c := range countries {
		args[i] = []any{c.ID, c.Name}
	}
	return s.exec(ctx, "countries", `INSERT INTO "Country" (id, name) VALUES (?, ?)`, args)
}

func (s *Store) InsertLeagues(ctx context.Context, leagues []league.League) error {
	args := make([][]any, len(leagues))
	for i, l := range leagues {
		args[i] = []any{l.ID, l.CountryID, l.Name}
	}
	return s.exec(ctx, "leagues", `INSERT INTO "League" (id, country_id, name) VALUES (?, ?, ?)`, args)
}

func (s *Store) InsertTeams(ctx context.Context, teams []league.Team) error {
	args := make([][]any, len(teams))
	for i, t := range teams {
		args[i] = []any{t.ID, t.APIID, t.LongName, t.ShortName}
	}
	return s.exec(ctx, "teams",
		`INSERT INTO "Team" (id, team_api_id, team_long_name, team_short_name) VALUES (?, ?, ?, ?)`, args)
}

func (s *Store) InsertPlayers(ctx context.Context, players []league.Player) error {
	args := make([][]any, len(players))
	for i, p := range players {
		args[i] = []any{p.ID, p.APIID, p.Name}
	}
	return s.exec(ctx, "players", `INSERT INTO "Player" (id, player_api_id, player_name) VALUES (?, ?, ?)`, args)
}

func (s *Store) InsertPlayerAttributes(ctx context.Context, attrs []league.PlayerAttributes) error {
	args := make([][]any, len(attrs))
	for i, a := range attrs {
		args[i] = []any{a.PlayerAPIID, formatDate(a.Date), a.OverallRating}
	}
	return s.exec(ctx, "player attributes",
		`INSERT INTO "Player_Attributes" (player_api_id, date, overall_rating) VALUES (?, ?, ?)`, args)
}

// InsertMatches stores matches; empty lineup slots are written as NULL.
func (s *Store) InsertMatches(ctx context.Context, matches []league.Match) error {
	args := make([][]any, len(matches))
	for i, m := range matches {
		a := []any{
			m.ID, m.APIID, m.CountryID, m.LeagueID, m.Season, m.Stage, formatDate(m.Date),
			m.HomeTeamAPIID, m.AwayTeamAPIID, m.HomeGoals, m.AwayGoals,
		}
		args[i] = append(a, lineupArgs(m)...)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(strings.Split(matchColumns, ","))), ", ")
	return s.exec(ctx, "matches",
		`INSERT INTO "Match" (`+matchColumns+`) VALUES (`+placeholders+`)`, args)
}

// DeleteAll empties every relation.
func (s *Store) DeleteAll(ctx context.Context) error {
	for _, table := range []string{
		league.MatchRelation,
		league.PlayerAttributesRelation,
		league.PlayerRelation,
		league.TeamRelation,
		league.LeagueRelation,
		league.CountryRelation,
	} {
		if _, err := s.DB.ExecContext(ctx, `DELETE FROM "`+table+`"`); err != nil {
			return fmt.Errorf("deleting %s: %w", table, err)
		}
	}
	return nil
}
