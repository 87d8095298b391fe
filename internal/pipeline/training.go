package pipeline

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/utakatalp/match-predictor/internal/league"
)

// TrainingSet is the flat feature table handed to a classifier.
// Rows, X and Y are aligned; Rows keeps the join key and display fields.
type TrainingSet struct {
	Columns []string
	Rows    []EnrichedMatch
	X       [][]float64
	Y       []league.Outcome
}

func (ts *TrainingSet) Len() int { return len(ts.Rows) }

// Subset returns the rows at idx, in idx order.
func (ts *TrainingSet) Subset(idx []int) *TrainingSet {
	out := &TrainingSet{
		Columns: ts.Columns,
		Rows:    make([]EnrichedMatch, len(idx)),
		X:       make([][]float64, len(idx)),
		Y:       make([]league.Outcome, len(idx)),
	}
	for i, j := range idx {
		out.Rows[i] = ts.Rows[j]
		out.X[i] = ts.X[j]
		out.Y[i] = ts.Y[j]
	}
	return out
}

// LeagueColumn names the one-hot column of a league id.
func LeagueColumn(id int64) string {
	return fmt.Sprintf("League_%d", id)
}

// TrainingSet enriches the match table, keeps the first limit matches with a
// full lineup (all of them when limit is not positive), and joins their feature rows,
// rating vectors and labels on match_api_id. Matches where a lineup player has
// no rating before kick-off are dropped.
func (a *Aggregator) TrainingSet(ctx context.Context, limit int) (*TrainingSet, error) {
	enriched, err := a.Enrich()
	if err != nil {
		return nil, err
	}

	var selected []EnrichedMatch
	for _, e := range enriched {
		if e.HasFullLineup() {
			selected = append(selected, e)
		}
	}
	incomplete := len(enriched) - len(selected)
	if limit > 0 && len(selected) > limit {
		selected = selected[:limit]
	}

	matches := make([]league.Match, len(selected))
	for i, e := range selected {
		matches[i] = e.Match
	}

	features, err := a.Features(ctx, matches)
	if err != nil {
		return nil, fmt.Errorf("building features: %w", err)
	}
	ratings, err := a.Ratings(ctx, matches)
	if err != nil {
		return nil, fmt.Errorf("resolving ratings: %w", err)
	}
	labels := Labels(matches)

	leagueIDs := distinctLeagues(features)
	leagueIdx := make(map[int64]int, len(leagueIDs))

	columns := league.FeatureColumns()
	for i, id := range leagueIDs {
		leagueIdx[id] = i
		columns = append(columns, LeagueColumn(id))
	}
	columns = append(columns, league.RatingColumns()...)

	ts := &TrainingSet{Columns: columns}
	unrated := 0
	for i := range matches {
		if !ratings[i].Complete() {
			unrated++
			for _, err := range ratings[i].Missing() {
				a.logger.Debug("dropping match without prior rating", zap.Error(err))
			}
			continue
		}
		row := make([]float64, 0, len(columns))
		row = append(row, features[i].Values()...)
		oneHot := make([]float64, len(leagueIDs))
		oneHot[leagueIdx[features[i].LeagueID]] = 1
		row = append(row, oneHot...)
		row = append(row, ratings[i].Values()...)

		ts.Rows = append(ts.Rows, selected[i])
		ts.X = append(ts.X, row)
		ts.Y = append(ts.Y, labels[i].Label)
	}

	a.logger.Info("training set assembled",
		zap.Int("rows", ts.Len()),
		zap.Int("columns", len(columns)),
		zap.Int("incomplete_lineups", incomplete),
		zap.Int("missing_ratings", unrated),
		zap.Int("leagues", len(leagueIDs)),
	)
	return ts, nil
}

func distinctLeagues(features []league.Features) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, f := range features {
		if _, ok := seen[f.LeagueID]; !ok {
			seen[f.LeagueID] = struct{}{}
			ids = append(ids, f.LeagueID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
