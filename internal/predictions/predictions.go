// Package predictions reads and writes the per-match prediction file consumed by the dashboard.
package predictions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/utakatalp/match-predictor/internal/league"
	"github.com/utakatalp/match-predictor/internal/pipeline"
)

// Fields is the number of columns per line:
// match_api_id, actual_result, prob_1, prob_2, prob_3, league, home_team,
// away_team, home_goals, away_goals, season, stage.
// prob_1..prob_3 follow league.Outcomes() order. The file has no header.
const Fields = 12

// Record is one predicted match.
type Record struct {
	MatchAPIID    int64
	Actual        league.Outcome
	Probabilities [3]float64
	League        string
	HomeTeam      string
	AwayTeam      string
	HomeGoals     int
	AwayGoals     int
	Season        string
	Stage         int
}

// FixtureKey is the dashboard's name for a fixture within a stage.
func (r Record) FixtureKey() string {
	return r.HomeTeam + " VS " + r.AwayTeam
}

func (r Record) Score() league.Score {
	return league.Score{Home: r.HomeTeam, Away: r.AwayTeam, HomeGoals: r.HomeGoals, AwayGoals: r.AwayGoals}
}

// Records pairs each training-set row with its predicted class probabilities.
func Records(ts *pipeline.TrainingSet, probs [][]float64) ([]Record, error) {
	if len(probs) != ts.Len() {
		return nil, fmt.Errorf("%d rows but %d probability vectors", ts.Len(), len(probs))
	}
	out := make([]Record, ts.Len())
	for i, m := range ts.Rows {
		if len(probs[i]) != 3 {
			return nil, fmt.Errorf("match %d: %d probabilities, want 3", m.APIID, len(probs[i]))
		}
		out[i] = Record{
			MatchAPIID:    m.APIID,
			Actual:        ts.Y[i],
			Probabilities: [3]float64{probs[i][0], probs[i][1], probs[i][2]},
			League:        m.LeagueName,
			HomeTeam:      m.HomeTeamName,
			AwayTeam:      m.AwayTeamName,
			HomeGoals:     m.HomeGoals,
			AwayGoals:     m.AwayGoals,
			Season:        m.Season,
			Stage:         m.Stage,
		}
	}
	return out, nil
}

func Write(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	for _, r := range records {
		line := []string{
			strconv.FormatInt(r.MatchAPIID, 10),
			string(r.Actual),
			formatProb(r.Probabilities[0]),
			formatProb(r.Probabilities[1]),
			formatProb(r.Probabilities[2]),
			r.League,
			r.HomeTeam,
			r.AwayTeam,
			strconv.Itoa(r.HomeGoals),
			strconv.Itoa(r.AwayGoals),
			r.Season,
			strconv.Itoa(r.Stage),
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("writing match %d: %w", r.MatchAPIID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating predictions file: %w", err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = Fields

	var out []Record
	for line := 1; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading predictions: %w", err)
		}
		rec, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("predictions line %d: %w", line, err)
		}
		out = append(out, rec)
	}
}

func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening predictions file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

func parseRecord(f []string) (Record, error) {
	var (
		r   Record
		err error
	)
	if r.MatchAPIID, err = strconv.ParseInt(f[0], 10, 64); err != nil {
		return r, fmt.Errorf("match_api_id: %w", err)
	}
	if r.Actual, err = league.ParseOutcome(f[1]); err != nil {
		return r, err
	}
	for k := 0; k < 3; k++ {
		if r.Probabilities[k], err = strconv.ParseFloat(f[2+k], 64); err != nil {
			return r, fmt.Errorf("prob_%d: %w", k+1, err)
		}
	}
	r.League, r.HomeTeam, r.AwayTeam = f[5], f[6], f[7]
	if r.HomeGoals, err = strconv.Atoi(f[8]); err != nil {
		return r, fmt.Errorf("home_goals: %w", err)
	}
	if r.AwayGoals, err = strconv.Atoi(f[9]); err != nil {
		return r, fmt.Errorf("away_goals: %w", err)
	}
	r.Season = f[10]
	if r.Stage, err = strconv.Atoi(f[11]); err != nil {
		return r, fmt.Errorf("stage: %w", err)
	}
	return r, nil
}

func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'f', 4, 64)
}
