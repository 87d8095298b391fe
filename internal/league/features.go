package league

// Default history windows.
const (
	DefaultFormWindow       = 10
	DefaultHeadToHeadWindow = 3
)

// Windows bounds the history considered for a feature row.
type Windows struct {
	Form       int
	HeadToHead int
}

func DefaultWindows() Windows {
	return Windows{Form: DefaultFormWindow, HeadToHead: DefaultHeadToHeadWindow}
}

// Features is the historical-form summary of one match.
type Features struct {
	MatchAPIID              int64
	LeagueID                int64
	HomeTeamGoalsDifference int
	AwayTeamGoalsDifference int
	GamesWonHomeTeam        int
	GamesWonAwayTeam        int
	GamesAgainstWon         int
	GamesAgainstLost        int
}

// FeatureColumns lists the numeric columns produced by Features.Values.
func FeatureColumns() []string {
	return []string{
		"home_team_goals_difference",
		"away_team_goals_difference",
		"games_won_home_team",
		"games_won_away_team",
		"games_against_won",
		"games_against_lost",
	}
}

func (f Features) Values() []float64 {
	return []float64{
		float64(f.HomeTeamGoalsDifference),
		float64(f.AwayTeamGoalsDifference),
		float64(f.GamesWonHomeTeam),
		float64(f.GamesWonAwayTeam),
		float64(f.GamesAgainstWon),
		float64(f.GamesAgainstLost),
	}
}

// BuildFeatures computes the feature row of m from the history in matches.
func BuildFeatures(m Match, matches []Match, w Windows) Features {
	return buildFeatures(m,
		ByParticipant(matches, m.HomeTeamAPIID),
		ByParticipant(matches, m.AwayTeamAPIID),
		w,
	)
}

func buildFeatures(m Match, homeMatches, awayMatches []Match, w Windows) Features {
	home, away := m.HomeTeamAPIID, m.AwayTeamAPIID

	homeForm := BeforeDate(homeMatches, m.Date, w.Form)
	awayForm := BeforeDate(awayMatches, m.Date, w.Form)
	// every head-to-head match involves the home team, so its own history suffices
	h2h := BeforeDate(BetweenOpponents(homeMatches, home, away), m.Date, w.HeadToHead)

	return Features{
		MatchAPIID:              m.APIID,
		LeagueID:                m.LeagueID,
		HomeTeamGoalsDifference: GoalsFor(homeForm, home) - GoalsAgainst(homeForm, home),
		AwayTeamGoalsDifference: GoalsFor(awayForm, away) - GoalsAgainst(awayForm, away),
		GamesWonHomeTeam:        WinsFor(homeForm, home),
		GamesWonAwayTeam:        WinsFor(awayForm, away),
		GamesAgainstWon:         WinsFor(h2h, home),
		GamesAgainstLost:        WinsFor(h2h, away),
	}
}

// FeatureBuilder partitions a match set by team once, so building rows for
// many matches does not rescan the whole set per match. Rows are identical
// to those from BuildFeatures over the same set.
type FeatureBuilder struct {
	byTeam  map[int64][]Match
	windows Windows
}

func NewFeatureBuilder(matches []Match, w Windows) *FeatureBuilder {
	b := &FeatureBuilder{byTeam: make(map[int64][]Match), windows: w}
	for _, m := range matches {
		b.byTeam[m.HomeTeamAPIID] = append(b.byTeam[m.HomeTeamAPIID], m)
		if m.AwayTeamAPIID != m.HomeTeamAPIID {
			b.byTeam[m.AwayTeamAPIID] = append(b.byTeam[m.AwayTeamAPIID], m)
		}
	}
	return b
}

func (b *FeatureBuilder) Build(m Match) Features {
	return buildFeatures(m, b.byTeam[m.HomeTeamAPIID], b.byTeam[m.AwayTeamAPIID], b.windows)
}
