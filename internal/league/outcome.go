package league

import "fmt"

// Outcome is a match result from the home team's point of view.
type Outcome string

const (
	Win    Outcome = "Win"
	Draw   Outcome = "Draw"
	Defeat Outcome = "Defeat"
)

// Outcomes returns the result classes in probability column order.
func Outcomes() []Outcome {
	return []Outcome{Win, Draw, Defeat}
}

func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case Win, Draw, Defeat:
		return o, nil
	}
	return "", fmt.Errorf("unknown outcome %q", s)
}

// Result carries the label of one match.
type Result struct {
	MatchAPIID int64
	Label      Outcome
}

// Label derives the result of m relative to the home team.
func Label(m Match) Result {
	r := Result{MatchAPIID: m.APIID}
	switch {
	case m.HomeGoals > m.AwayGoals:
		r.Label = Win
	case m.HomeGoals < m.AwayGoals:
		r.Label = Defeat
	default:
		r.Label = Draw
	}
	return r
}
