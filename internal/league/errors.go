package league

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrAmbiguousKey        = errors.New("ambiguous key")
	ErrInsufficientHistory = errors.New("no prior rating")
)

// LookupError reports a failed key lookup within one relation.
type LookupError struct {
	Relation string
	Column   string
	Value    int64
	Err      error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s.%s = %d: %v", e.Relation, e.Column, e.Value, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// RatingError reports a player slot whose rating could not be resolved.
type RatingError struct {
	MatchAPIID  int64
	Slot        Slot
	PlayerAPIID int64
	Err         error
}

func (e *RatingError) Error() string {
	return fmt.Sprintf("match %d %s (player %d): %v", e.MatchAPIID, e.Slot, e.PlayerAPIID, e.Err)
}

func (e *RatingError) Unwrap() error { return e.Err }
