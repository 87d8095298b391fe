package league

import (
	"sort"
	"time"
)

// RatingStatus tells how a slot's rating was obtained.
type RatingStatus int

const (
	// Rated means a snapshot before the match date was found.
	Rated RatingStatus = iota
	// Unassigned means the slot has no player; the rating is 0.
	Unassigned
	// NoHistory means the player has no snapshot before the match date; the rating is 0.
	NoHistory
)

func (s RatingStatus) String() string {
	switch s {
	case Rated:
		return "rated"
	case Unassigned:
		return "unassigned"
	case NoHistory:
		return "no_history"
	default:
		return "unknown"
	}
}

type SlotRating struct {
	Slot        Slot
	PlayerAPIID int64
	Rating      int
	Status      RatingStatus
}

// PlayerRatings is the 22-slot rating vector of one match, in Slots() order.
type PlayerRatings struct {
	MatchAPIID int64
	Slots      [2 * LineupSize]SlotRating
}

// Complete reports whether every slot holds a real rating.
func (r PlayerRatings) Complete() bool {
	for _, s := range r.Slots {
		if s.Status != Rated {
			return false
		}
	}
	return true
}

// Missing returns the error for every slot that has a player but no prior rating.
func (r PlayerRatings) Missing() []error {
	var errs []error
	for _, s := range r.Slots {
		if s.Status == NoHistory {
			errs = append(errs, &RatingError{
				MatchAPIID:  r.MatchAPIID,
				Slot:        s.Slot,
				PlayerAPIID: s.PlayerAPIID,
				Err:         ErrInsufficientHistory,
			})
		}
	}
	return errs
}

func (r PlayerRatings) Values() []float64 {
	out := make([]float64, len(r.Slots))
	for i, s := range r.Slots {
		out[i] = float64(s.Rating)
	}
	return out
}

// RatingColumns returns the rating feature columns in Slots() order.
func RatingColumns() []string {
	out := make([]string, 0, 2*LineupSize)
	for _, s := range slots {
		out = append(out, s.RatingColumn())
	}
	return out
}

// RatingIndex groups rating snapshots per player, newest first.
// Snapshots sharing a date keep their relation order.
type RatingIndex struct {
	byPlayer map[int64][]PlayerAttributes
}

func NewRatingIndex(attrs []PlayerAttributes) *RatingIndex {
	ix := &RatingIndex{byPlayer: make(map[int64][]PlayerAttributes)}
	for _, a := range attrs {
		ix.byPlayer[a.PlayerAPIID] = append(ix.byPlayer[a.PlayerAPIID], a)
	}
	for _, snaps := range ix.byPlayer {
		sort.SliceStable(snaps, func(i, j int) bool {
			return snaps[i].Date.After(snaps[j].Date)
		})
	}
	return ix
}

// Lookup returns the most recent snapshot of playerID dated strictly before date.
func (ix *RatingIndex) Lookup(playerID int64, date time.Time) (PlayerAttributes, error) {
	snaps := ix.byPlayer[playerID]
	i := sort.Search(len(snaps), func(i int) bool {
		return snaps[i].Date.Before(date)
	})
	if i == len(snaps) {
		return PlayerAttributes{}, ErrInsufficientHistory
	}
	return snaps[i], nil
}

// Ratings resolves all 22 slots of m. Empty slots and players without prior
// snapshots are zero-filled and flagged through SlotRating.Status.
func (ix *RatingIndex) Ratings(m Match) PlayerRatings {
	out := PlayerRatings{MatchAPIID: m.APIID}
	for i, s := range slots {
		sr := SlotRating{Slot: s}
		playerID, ok := m.Player(s)
		if !ok {
			sr.Status = Unassigned
			out.Slots[i] = sr
			continue
		}
		sr.PlayerAPIID = playerID
		snap, err := ix.Lookup(playerID, m.Date)
		if err != nil {
			sr.Status = NoHistory
		} else {
			sr.Rating = snap.OverallRating
		}
		out.Slots[i] = sr
	}
	return out
}
