package league

import (
	"sort"
	"time"
)

// ByParticipant returns the matches where teamID played home or away, in input order.
func ByParticipant(matches []Match, teamID int64) []Match {
	var out []Match
	for _, m := range matches {
		if m.HomeTeamAPIID == teamID || m.AwayTeamAPIID == teamID {
			out = append(out, m)
		}
	}
	return out
}

// BeforeDate returns at most limit matches played strictly before cutoff,
// most recent first. Matches on the same date keep their input order.
// A negative limit is treated as zero.
func BeforeDate(matches []Match, cutoff time.Time, limit int) []Match {
	if limit <= 0 {
		return nil
	}
	var out []Match
	for _, m := range matches {
		if m.Date.Before(cutoff) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BetweenOpponents returns the matches between a and b in either home/away role,
// in input order.
func BetweenOpponents(matches []Match, a, b int64) []Match {
	var out []Match
	for _, m := range matches {
		if (m.HomeTeamAPIID == a && m.AwayTeamAPIID == b) ||
			(m.HomeTeamAPIID == b && m.AwayTeamAPIID == a) {
			out = append(out, m)
		}
	}
	return out
}

// GoalsFor sums the goals scored by teamID across both roles.
func GoalsFor(matches []Match, teamID int64) int {
	goals := 0
	for _, m := range matches {
		if m.HomeTeamAPIID == teamID {
			goals += m.HomeGoals
		}
		if m.AwayTeamAPIID == teamID {
			goals += m.AwayGoals
		}
	}
	return goals
}

// GoalsAgainst sums the goals conceded by teamID across both roles.
func GoalsAgainst(matches []Match, teamID int64) int {
	goals := 0
	for _, m := range matches {
		if m.AwayTeamAPIID == teamID {
			goals += m.HomeGoals
		}
		if m.HomeTeamAPIID == teamID {
			goals += m.AwayGoals
		}
	}
	return goals
}

// WinsFor counts the matches teamID won, home or away.
func WinsFor(matches []Match, teamID int64) int {
	wins := 0
	for _, m := range matches {
		switch {
		case m.HomeTeamAPIID == teamID && m.HomeGoals > m.AwayGoals:
			wins++
		case m.AwayTeamAPIID == teamID && m.AwayGoals > m.HomeGoals:
			wins++
		}
	}
	return wins
}
