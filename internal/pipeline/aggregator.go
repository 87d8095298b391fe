// Package pipeline turns the loaded relations into per-match feature rows.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/utakatalp/match-predictor/internal/league"
)

// ErrDuplicateMatch is returned when a match set repeats a match_api_id.
var ErrDuplicateMatch = errors.New("duplicate match_api_id")

// EnrichedMatch is a match joined with its display names.
type EnrichedMatch struct {
	league.Match
	CountryName     string
	LeagueName      string
	HomeTeamName    string
	AwayTeamName    string
	HomePlayerNames [league.LineupSize]string
	AwayPlayerNames [league.LineupSize]string
}

func (m EnrichedMatch) ScoreLine() string {
	return fmt.Sprintf("%s %d - %d %s",
		m.HomeTeamName, m.HomeGoals,
		m.AwayGoals, m.AwayTeamName,
	)
}

// Aggregator owns the loaded relations and the helpers derived from them.
type Aggregator struct {
	rel     *league.Relations
	logger  *zap.Logger
	windows league.Windows
	workers int
	strict  bool
	players bool

	countries *league.Directory
	leagues   *league.Directory
	teams     *league.Directory
	playerDir *league.Directory
	ratings   *league.RatingIndex
}

type Option func(*Aggregator)

func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithWindows overrides the form and head-to-head window sizes.
func WithWindows(w league.Windows) Option {
	return func(a *Aggregator) { a.windows = w }
}

// WithWorkers bounds the goroutines used for bulk row generation.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithStrictKeys makes name lookups fail on keys that appear more than once.
func WithStrictKeys() Option {
	return func(a *Aggregator) { a.strict = true }
}

// WithPlayerNames also resolves the 22 lineup slots to player names during Enrich.
func WithPlayerNames() Option {
	return func(a *Aggregator) { a.players = true }
}

func New(rel *league.Relations, opts ...Option) *Aggregator {
	a := &Aggregator{
		rel:     rel,
		logger:  zap.NewNop(),
		windows: league.DefaultWindows(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.countries = league.NewDirectory(league.CountryRelation, rel.Countries, league.CountryID, a.strict)
	a.leagues = league.NewDirectory(league.LeagueRelation, rel.Leagues, league.LeagueID, a.strict)
	a.teams = league.NewDirectory(league.TeamRelation, rel.Teams, league.TeamAPIID, a.strict)
	a.playerDir = league.NewDirectory(league.PlayerRelation, rel.Players, league.PlayerAPIID, a.strict)
	a.ratings = league.NewRatingIndex(rel.PlayerAttributes)

	for _, d := range []struct {
		name string
		dir  *league.Directory
	}{
		{league.CountryRelation, a.countries},
		{league.LeagueRelation, a.leagues},
		{league.TeamRelation, a.teams},
		{league.PlayerRelation, a.playerDir},
	} {
		if n := d.dir.Duplicates(); n > 0 {
			a.logger.Warn("relation has duplicate keys",
				zap.String("relation", d.name),
				zap.Int("keys", n),
				zap.Bool("strict", a.strict),
			)
		}
	}
	return a
}

func (a *Aggregator) Relations() *league.Relations { return a.rel }

func (a *Aggregator) RatingIndex() *league.RatingIndex { return a.ratings }

// Enrich joins every match with its country, league and team names. The source
// relation is not modified. Any unresolved key aborts the whole enrichment.
func (a *Aggregator) Enrich() ([]EnrichedMatch, error) {
	out := make([]EnrichedMatch, len(a.rel.Matches))
	for i, m := range a.rel.Matches {
		e, err := a.enrich(m)
		if err != nil {
			return nil, fmt.Errorf("enriching match %d: %w", m.APIID, err)
		}
		out[i] = e
	}
	a.logger.Info("matches enriched",
		zap.Int("matches", len(out)),
		zap.Bool("player_names", a.players),
	)
	return out, nil
}

func (a *Aggregator) enrich(m league.Match) (EnrichedMatch, error) {
	e := EnrichedMatch{Match: m}
	var err error
	if e.CountryName, err = a.countries.Name(m.CountryID); err != nil {
		return e, err
	}
	if e.LeagueName, err = a.leagues.Name(m.LeagueID); err != nil {
		return e, err
	}
	if e.HomeTeamName, err = a.teams.Name(m.HomeTeamAPIID); err != nil {
		return e, err
	}
	if e.AwayTeamName, err = a.teams.Name(m.AwayTeamAPIID); err != nil {
		return e, err
	}
	if !a.players {
		return e, nil
	}
	for i := 0; i < league.LineupSize; i++ {
		if e.HomePlayerNames[i], err = a.playerName(m.HomePlayers[i]); err != nil {
			return e, err
		}
		if e.AwayPlayerNames[i], err = a.playerName(m.AwayPlayers[i]); err != nil {
			return e, err
		}
	}
	return e, nil
}

func (a *Aggregator) playerName(id int64) (string, error) {
	if id == league.NoPlayer {
		return "", nil
	}
	return a.playerDir.Name(id)
}

// Features builds one feature row per match, with history drawn from the same set.
// Rows come back in input order.
func (a *Aggregator) Features(ctx context.Context, matches []league.Match) ([]league.Features, error) {
	if err := uniqueIDs(matches); err != nil {
		return nil, err
	}
	b := league.NewFeatureBuilder(matches, a.windows)
	out := make([]league.Features, len(matches))
	err := a.each(ctx, len(matches), func(i int) {
		out[i] = b.Build(matches[i])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Ratings resolves the 22-slot rating vector of every match, in input order.
func (a *Aggregator) Ratings(ctx context.Context, matches []league.Match) ([]league.PlayerRatings, error) {
	out := make([]league.PlayerRatings, len(matches))
	err := a.each(ctx, len(matches), func(i int) {
		out[i] = a.ratings.Ratings(matches[i])
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Labels derives the result of every match.
func Labels(matches []league.Match) []league.Result {
	out := make([]league.Result, len(matches))
	for i, m := range matches {
		out[i] = league.Label(m)
	}
	return out
}

// each runs fn over [0, n) split into contiguous chunks, one per worker.
func (a *Aggregator) each(ctx context.Context, n int, fn func(i int)) error {
	g, ctx := errgroup.WithContext(ctx)
	chunk := (n + a.workers - 1) / a.workers
	for start := 0; start < n; start += chunk {
		lo, hi := start, min(start+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}

func uniqueIDs(matches []league.Match) error {
	seen := make(map[int64]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.APIID]; ok {
			return fmt.Errorf("match %d: %w", m.APIID, ErrDuplicateMatch)
		}
		seen[m.APIID] = struct{}{}
	}
	return nil
}
