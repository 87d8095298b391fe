package league

import (
	"fmt"
	"time"
)

// LineupSize is the number of player slots per side of a fixture.
const LineupSize = 11

// NoPlayer marks a lineup slot without a known player.
const NoPlayer int64 = 0

// Country is a row of the Country relation.
type Country struct {
	ID   int64
	Name string
}

// League is a row of the League relation.
type League struct {
	ID        int64
	CountryID int64
	Name      string
}

// Team is a row of the Team relation. Matches reference teams by APIID,
// not by the surrogate ID.
type Team struct {
	ID        int64
	APIID     int64
	LongName  string
	ShortName string
}

// Player is a row of the Player relation.
type Player struct {
	ID    int64
	APIID int64
	Name  string
}

// PlayerAttributes is one dated rating snapshot of a player.
type PlayerAttributes struct {
	PlayerAPIID   int64
	Date          time.Time
	OverallRating int
}

// Match represents a fixture between two teams.
type Match struct {
	ID            int64
	APIID         int64
	CountryID     int64
	LeagueID      int64
	Season        string
	Stage         int
	Date          time.Time
	HomeTeamAPIID int64
	AwayTeamAPIID int64
	HomeGoals     int
	AwayGoals     int
	HomePlayers   [LineupSize]int64
	AwayPlayers   [LineupSize]int64
}

// Player returns the player assigned to slot s, or false when the slot is empty.
func (m *Match) Player(s Slot) (int64, bool) {
	var id int64
	if s.Side == Home {
		id = m.HomePlayers[s.Number-1]
	} else {
		id = m.AwayPlayers[s.Number-1]
	}
	return id, id != NoPlayer
}

// HasFullLineup reports whether all 22 slots carry a player.
func (m *Match) HasFullLineup() bool {
	for _, s := range Slots() {
		if _, ok := m.Player(s); !ok {
			return false
		}
	}
	return true
}

// Relations holds the six source relations, loaded once and never mutated.
type Relations struct {
	Countries        []Country
	Leagues          []League
	Teams            []Team
	Players          []Player
	PlayerAttributes []PlayerAttributes
	Matches          []Match
}

// Side is the home or away half of a lineup.
type Side int

const (
	Home Side = iota
	Away
)

func (s Side) String() string {
	if s == Home {
		return "home"
	}
	return "away"
}

// Slot identifies one of the 22 lineup positions, e.g. home_player_3.
type Slot struct {
	Side   Side
	Number int
}

func (s Slot) String() string {
	return fmt.Sprintf("%s_player_%d", s.Side, s.Number)
}

// RatingColumn is the feature column holding the rating for this slot.
func (s Slot) RatingColumn() string {
	return s.String() + "_overall_rating"
}

var slots = func() []Slot {
	out := make([]Slot, 0, 2*LineupSize)
	for i := 1; i <= LineupSize; i++ {
		out = append(out, Slot{Side: Home, Number: i}, Slot{Side: Away, Number: i})
	}
	return out
}()

// Slots returns the 22 lineup slots interleaved home/away:
// home_player_1, away_player_1, home_player_2, ...
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}
