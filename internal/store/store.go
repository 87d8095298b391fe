package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/utakatalp/match-predictor/internal/league"
)

// Supported drivers.
const (
	Postgres = "postgres"
	SQLite   = "sqlite3"
)

// Store wraps a database holding the soccer relations and loads them into memory.
// It only ever reads whole relations; filtering happens in memory.
type Store struct {
	DB     *sqlx.DB
	logger *zap.Logger
}

// Open connects to the database behind dsn using driver.
func Open(driver, dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if driver == SQLite {
		// an in-memory database lives on a single connection
		db.SetMaxOpenConns(1)
	}
	// verify early
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	logger.Info("connected to relation store", zap.String("driver", driver))
	return &Store{DB: db, logger: logger}, nil
}

// PostgresDSN builds a lib/pq connection string.
func PostgresDSN(host string, port int, user, password, dbname, sslmode string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// LoadRelations reads all six relations in full.
func (s *Store) LoadRelations(ctx context.Context) (*league.Relations, error) {
	rel := &league.Relations{}
	var err error

	if rel.Countries, err = s.Countries(ctx); err != nil {
		return nil, err
	}
	if rel.Leagues, err = s.Leagues(ctx); err != nil {
		return nil, err
	}
	if rel.Teams, err = s.Teams(ctx); err != nil {
		return nil, err
	}
	if rel.Players, err = s.Players(ctx); err != nil {
		return nil, err
	}
	if rel.PlayerAttributes, err = s.PlayerAttributes(ctx); err != nil {
		return nil, err
	}
	if rel.Matches, err = s.Matches(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("relations loaded",
		zap.Int("countries", len(rel.Countries)),
		zap.Int("leagues", len(rel.Leagues)),
		zap.Int("teams", len(rel.Teams)),
		zap.Int("players", len(rel.Players)),
		zap.Int("player_attributes", len(rel.PlayerAttributes)),
		zap.Int("matches", len(rel.Matches)),
	)
	return rel, nil
}

func (s *Store) Countries(ctx context.Context) ([]league.Country, error) {
	var rows []countryRow
	const q = `SELECT id, name FROM "Country"`
	if err := s.DB.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("querying countries: %w", err)
	}
	countries := make([]league.Country, len(rows))
	for i, r := range rows {
		countries[i] = league.Country{ID: r.ID, Name: r.Name}
	}
	return countries, nil
}

func (s *Store) Leagues(ctx context.Context) ([]league.League, error) {
	var rows []leagueRow
	const q = `SELECT id, country_id, name FROM "League"`
	if err := s.DB.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("querying leagues: %w", err)
	}
	leagues := make([]league.League, len(rows))
	for i, r := range rows {
		leagues[i] = league.League{ID: r.ID, CountryID: r.CountryID, Name: r.Name}
	}
	return leagues, nil
}

func (s *Store) Teams(ctx context.Context) ([]league.Team, error) {
	var rows []teamRow
	const q = `SELECT id, team_api_id, team_long_name, team_short_name FROM "Team"`
	if err := s.DB.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	teams := make([]league.Team, len(rows))
	for i, r := range rows {
		teams[i] = r.team()
	}
	return teams, nil
}

func (s *Store) Players(ctx context.Context) ([]league.Player, error) {
	var rows []playerRow
	const q = `SELECT id, player_api_id, player_name FROM "Player"`
	if err := s.DB.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	players := make([]league.Player, len(rows))
	for i, r := range rows {
		players[i] = league.Player{ID: r.ID, APIID: r.APIID, Name: r.Name}
	}
	return players, nil
}

// PlayerAttributes returns every rated snapshot. Snapshots without an
// overall rating are skipped.
func (s *Store) PlayerAttributes(ctx context.Context) ([]league.PlayerAttributes, error) {
	var rows []playerAttributesRow
	const q = `SELECT player_api_id, date, overall_rating FROM "Player_Attributes"`
	if err := s.DB.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("querying player attributes: %w", err)
	}

	attrs := make([]league.PlayerAttributes, 0, len(rows))
	unrated := 0
	for _, r := range rows {
		if !r.OverallRating.Valid {
			unrated++
			continue
		}
		date, err := parseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("player %d attributes: %w", r.PlayerAPIID, err)
		}
		attrs = append(attrs, league.PlayerAttributes{
			PlayerAPIID:   r.PlayerAPIID,
			Date:          date,
			OverallRating: int(r.OverallRating.Int64),
		})
	}
	if unrated > 0 {
		s.logger.Debug("skipped unrated player snapshots", zap.Int("count", unrated))
	}
	return attrs, nil
}

func (s *Store) Matches(ctx context.Context) ([]league.Match, error) {
	var rows []matchRow
	q := `SELECT ` + matchColumns + ` FROM "Match" ORDER BY id`
	if err := s.DB.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}

	matches := make([]league.Match, len(rows))
	for i, r := range rows {
		m, err := r.match()
		if err != nil {
			return nil, fmt.Errorf("scanning match %d: %w", r.APIID, err)
		}
		matches[i] = m
	}
	return matches, nil
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q", s)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayouts[0])
}
