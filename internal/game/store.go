package game

import (
	"context"
	"time"

	"github.com/sign-vn/slsign/internal/domains/entities"
)

// MatchStore is the durable match record collaborator. AssignPlayerB and
// SetWinner must be atomic against concurrent writers on the same match:
// AssignPlayerB fails with ErrMatchFull when the slot was taken first, and
// SetWinner fails with ErrMatchNotActive when the match was completed first.
type MatchStore interface {
	GetMatch(ctx context.Context, matchId string) (entities.Match, error)
	PutMatch(ctx context.Context, match entities.Match) error
	AssignPlayerB(ctx context.Context, matchId, playerBId, sentence string) error
	SetWinner(ctx context.Context, matchId, winnerId string, endTime time.Time) error
	FetchActiveMatches(ctx context.Context) ([]entities.Match, error)
	FetchUserMatches(ctx context.Context, userId string) ([]entities.Match, error)
}

// UserStore is the participant directory collaborator. GetUser returns
// ErrUserNotFound for unknown ids. The increment operations are best-effort
// bookkeeping and are never part of a lifecycle invariant.
type UserStore interface {
	GetUser(ctx context.Context, userId string) (entities.User, error)
	PutUser(ctx context.Context, user entities.User) error
	IncrementGamesPlayed(ctx context.Context, userId string) error
	IncrementGamesWon(ctx context.Context, userId string) error
}

// Publisher fans an event out to every connection subscribed to a match
// channel. Delivery is best-effort; publishing never fails the caller.
type Publisher interface {
	Publish(matchId string, event Event)
	PublishExcept(matchId string, event Event, exceptUserId string)
}

const (
	EventPlayerJoined       = "player_joined"
	EventMatchStarted       = "match_started"
	EventMatchCompleted     = "match_completed"
	EventPlayerDisconnected = "player_disconnected"
)

type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type PlayerJoinedData struct {
	UserId   string `json:"userId"`
	Username string `json:"username"`
}

type MatchStartedData struct {
	MatchId  string `json:"matchId"`
	Sentence string `json:"sentence"`
	PlayerA  string `json:"playerA"`
	PlayerB  string `json:"playerB"`
}

type MatchCompletedData struct {
	MatchId        string `json:"matchId"`
	WinnerId       string `json:"winnerId"`
	WinnerUsername string `json:"winnerUsername"`
}
