package game

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchNotActive   = errors.New("match already completed")
	ErrSelfJoin         = errors.New("cannot join your own match")
	ErrMatchFull        = errors.New("match already has two players")
	ErrWinnerNotInMatch = errors.New("winner must be a player in this match")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Kind classifies a lifecycle failure for the transport layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidState
	KindConflict
	KindUnavailable
)

func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrMatchNotFound):
		return KindNotFound
	case errors.Is(err, ErrMatchNotActive):
		return KindInvalidState
	case errors.Is(err, ErrSelfJoin), errors.Is(err, ErrMatchFull), errors.Is(err, ErrWinnerNotInMatch):
		return KindConflict
	case errors.Is(err, ErrStoreUnavailable):
		return KindUnavailable
	}
	return KindUnknown
}

// storeErr passes through the sentinel errors a store is allowed to return
// and wraps anything else as an availability failure.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindUnknown {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
