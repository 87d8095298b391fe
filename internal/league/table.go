package league

import "sort"

// Score is a played fixture identified by team names.
type Score struct {
	Home, Away           string
	HomeGoals, AwayGoals int
}

// TableEntry holds the standings info for one team.
type TableEntry struct {
	Team                        string
	Played, Wins, Draws, Losses int
	GoalsFor, GoalsAgainst      int
	GoalDiff, Points            int
}

// CalculateTable builds league standings from played fixtures, ordered by
// points, goal difference, goals scored and then team name.
func CalculateTable(scores []Score) []*TableEntry {
	entries := make(map[string]*TableEntry)
	entry := func(team string) *TableEntry {
		e, ok := entries[team]
		if !ok {
			e = &TableEntry{Team: team}
			entries[team] = e
		}
		return e
	}

	for _, s := range scores {
		home, away := entry(s.Home), entry(s.Away)

		home.Played++
		away.Played++

		home.GoalsFor += s.HomeGoals
		home.GoalsAgainst += s.AwayGoals
		away.GoalsFor += s.AwayGoals
		away.GoalsAgainst += s.HomeGoals

		switch {
		case s.HomeGoals > s.AwayGoals:
			home.Wins++
			away.Losses++
			home.Points += 3
		case s.HomeGoals < s.AwayGoals:
			away.Wins++
			home.Losses++
			away.Points += 3
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	table := make([]*TableEntry, 0, len(entries))
	for _, e := range entries {
		e.GoalDiff = e.GoalsFor - e.GoalsAgainst
		table = append(table, e)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})

	return table
}
