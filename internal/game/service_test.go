package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/sign-vn/slsign/internal/domains/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memMatchStore implements MatchStore with the same conditional-write
// contract as the DynamoDB client.
type memMatchStore struct {
	mu      sync.Mutex
	matches map[string]entities.Match
}

func newMemMatchStore() *memMatchStore {
	return &memMatchStore{matches: make(map[string]entities.Match)}
}

func (s *memMatchStore) GetMatch(_ context.Context, matchId string) (entities.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[matchId]
	if !ok {
		return entities.Match{}, ErrMatchNotFound
	}
	return match, nil
}

func (s *memMatchStore) PutMatch(_ context.Context, match entities.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[match.Id] = match
	return nil
}

func (s *memMatchStore) AssignPlayerB(_ context.Context, matchId, playerBId, sentence string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[matchId]
	if !ok {
		return ErrMatchNotFound
	}
	if match.PlayerBId != "" || !match.IsActive {
		return ErrMatchFull
	}
	match.PlayerBId = playerBId
	match.Sentence = sentence
	s.matches[matchId] = match
	return nil
}

func (s *memMatchStore) SetWinner(_ context.Context, matchId, winnerId string, endTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[matchId]
	if !ok {
		return ErrMatchNotFound
	}
	if !match.IsActive {
		return ErrMatchNotActive
	}
	match.WinnerId = winnerId
	match.EndTime = &endTime
	match.IsActive = false
	s.matches[matchId] = match
	return nil
}

func (s *memMatchStore) FetchActiveMatches(_ context.Context) ([]entities.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []entities.Match
	for _, match := range s.matches {
		if match.IsActive {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (s *memMatchStore) FetchUserMatches(_ context.Context, userId string) ([]entities.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matches []entities.Match
	for _, match := range s.matches {
		if match.HasPlayer(userId) {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

type memUserStore struct {
	mu             sync.Mutex
	users          map[string]entities.User
	failIncrements bool
}

func newMemUserStore(users ...entities.User) *memUserStore {
	s := &memUserStore{users: make(map[string]entities.User)}
	for _, user := range users {
		s.users[user.Id] = user
	}
	return s
}

func (s *memUserStore) GetUser(_ context.Context, userId string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userId]
	if !ok {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *memUserStore) PutUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Id] = user
	return nil
}

func (s *memUserStore) IncrementGamesPlayed(_ context.Context, userId string) error {
	return s.increment(userId, func(u *entities.User) { u.GamesPlayed++ })
}

func (s *memUserStore) IncrementGamesWon(_ context.Context, userId string) error {
	return s.increment(userId, func(u *entities.User) { u.GamesWon++ })
}

func (s *memUserStore) increment(userId string, apply func(*entities.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failIncrements {
		return errors.New("counter update failed")
	}
	user, ok := s.users[userId]
	if !ok {
		return ErrUserNotFound
	}
	apply(&user)
	s.users[userId] = user
	return nil
}

type publishedEvent struct {
	matchId string
	event   Event
	except  string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(matchId string, event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{matchId: matchId, event: event})
}

func (p *recordingPublisher) PublishExcept(matchId string, event Event, exceptUserId string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{matchId: matchId, event: event, except: exceptUserId})
}

func (p *recordingPublisher) byType(eventType string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var events []publishedEvent
	for _, e := range p.events {
		if e.event.Type == eventType {
			events = append(events, e)
		}
	}
	return events
}

func newTestService(t *testing.T) (*Service, *memMatchStore, *memUserStore, *recordingPublisher) {
	t.Helper()
	matches := newMemMatchStore()
	users := newMemUserStore(
		entities.User{Id: "user-a", Username: "alice"},
		entities.User{Id: "user-b", Username: "bob"},
	)
	publisher := &recordingPublisher{}
	svc := NewService(matches, users, NewSentenceProvider(rand.NewSource(1)))
	svc.SetPublisher(publisher)
	return svc, matches, users, publisher
}

func TestCreateMatch(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	match, err := svc.CreateMatch(ctx, "user-a", "Medium")
	require.NoError(t, err)

	assert.NotEmpty(t, match.Id)
	assert.Equal(t, "user-a", match.PlayerAId)
	assert.Empty(t, match.PlayerBId)
	assert.Empty(t, match.Sentence)
	assert.Empty(t, match.WinnerId)
	assert.Equal(t, "medium", match.Difficulty)
	assert.True(t, match.IsActive)
	assert.Nil(t, match.EndTime)
	assert.False(t, match.StartTime.IsZero())
}

func TestCreateMatchUnknownDifficultyDefaultsToEasy(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	match, err := svc.CreateMatch(context.Background(), "user-a", "bogus")
	require.NoError(t, err)
	assert.Equal(t, "easy", match.Difficulty)
}

func TestCreateMatchUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.CreateMatch(context.Background(), "nobody", "easy")
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestJoinMatch(t *testing.T) {
	svc, _, _, publisher := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateMatch(ctx, "user-a", "medium")
	require.NoError(t, err)

	joined, err := svc.JoinMatch(ctx, created.Id, "user-b")
	require.NoError(t, err)

	assert.Equal(t, "user-b", joined.PlayerBId)
	assert.Contains(t, sentenceTiers["medium"], joined.Sentence)
	assert.True(t, joined.IsActive)

	playerJoined := publisher.byType(EventPlayerJoined)
	require.Len(t, playerJoined, 1)
	assert.Equal(t, created.Id, playerJoined[0].matchId)
	assert.Equal(t, "user-b", playerJoined[0].except, "joiner must not receive its own join event")
	assert.Equal(t, PlayerJoinedData{UserId: "user-b", Username: "bob"}, playerJoined[0].event.Data)

	started := publisher.byType(EventMatchStarted)
	require.Len(t, started, 1)
	assert.Empty(t, started[0].except)
	data, ok := started[0].event.Data.(MatchStartedData)
	require.True(t, ok)
	assert.Equal(t, created.Id, data.MatchId)
	assert.Equal(t, joined.Sentence, data.Sentence)
	assert.Equal(t, "alice", data.PlayerA)
	assert.Equal(t, "bob", data.PlayerB)
}

func TestJoinMatchFailures(t *testing.T) {
	svc, _, users, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateMatch(ctx, "user-a", "easy")
	require.NoError(t, err)

	t.Run("self join", func(t *testing.T) {
		_, err := svc.JoinMatch(ctx, created.Id, "user-a")
		require.ErrorIs(t, err, ErrSelfJoin)
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.JoinMatch(ctx, created.Id, "nobody")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("match not found", func(t *testing.T) {
		_, err := svc.JoinMatch(ctx, "missing", "user-b")
		require.ErrorIs(t, err, ErrMatchNotFound)
	})

	t.Run("match full", func(t *testing.T) {
		require.NoError(t, users.PutUser(ctx, entities.User{Id: "user-c", Username: "carol"}))
		_, err := svc.JoinMatch(ctx, created.Id, "user-b")
		require.NoError(t, err)
		_, err = svc.JoinMatch(ctx, created.Id, "user-c")
		require.ErrorIs(t, err, ErrMatchFull)
		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("match completed", func(t *testing.T) {
		_, err := svc.CompleteMatch(ctx, created.Id, "user-a")
		require.NoError(t, err)
		_, err = svc.JoinMatch(ctx, created.Id, "user-b")
		require.ErrorIs(t, err, ErrMatchNotActive)
		assert.Equal(t, KindInvalidState, KindOf(err))
	})
}

func TestConcurrentJoinOnlyOneSucceeds(t *testing.T) {
	svc, _, users, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, users.PutUser(ctx, entities.User{Id: "user-c", Username: "carol"}))

	created, err := svc.CreateMatch(ctx, "user-a", "easy")
	require.NoError(t, err)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, joiner := range []string{"user-b", "user-c"} {
		wg.Add(1)
		go func(userId string) {
			defer wg.Done()
			_, err := svc.JoinMatch(ctx, created.Id, userId)
			errs <- err
		}(joiner)
	}
	wg.Wait()
	close(errs)

	var failures []error
	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else {
			failures = append(failures, err)
		}
	}
	require.Equal(t, 1, successes, "exactly one concurrent join may win")
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0], ErrMatchFull)
}

func TestCompleteMatch(t *testing.T) {
	svc, _, users, publisher := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateMatch(ctx, "user-a", "easy")
	require.NoError(t, err)
	_, err = svc.JoinMatch(ctx, created.Id, "user-b")
	require.NoError(t, err)

	completed, err := svc.CompleteMatch(ctx, created.Id, "user-a")
	require.NoError(t, err)

	assert.Equal(t, "user-a", completed.WinnerId)
	assert.False(t, completed.IsActive)
	require.NotNil(t, completed.EndTime)

	winner, err := users.GetUser(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, 1, winner.GamesWon)
	assert.Equal(t, 1, winner.GamesPlayed)
	loser, err := users.GetUser(ctx, "user-b")
	require.NoError(t, err)
	assert.Equal(t, 0, loser.GamesWon)
	assert.Equal(t, 1, loser.GamesPlayed)

	events := publisher.byType(EventMatchCompleted)
	require.Len(t, events, 1)
	assert.Equal(t, MatchCompletedData{
		MatchId:        created.Id,
		WinnerId:       "user-a",
		WinnerUsername: "alice",
	}, events[0].event.Data)
}

func TestCompleteMatchRejectsSecondCompletion(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateMatch(ctx, "user-a", "easy")
	require.NoError(t, err)
	_, err = svc.JoinMatch(ctx, created.Id, "user-b")
	require.NoError(t, err)
	_, err = svc.CompleteMatch(ctx, created.Id, "user-a")
	require.NoError(t, err)

	_, err = svc.CompleteMatch(ctx, created.Id, "user-b")
	require.ErrorIs(t, err, ErrMatchNotActive)
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestCompleteMatchRejectsNonParticipant(t *testing.T) {
	svc, _, users, _ := newTestService(t)
	ctx := context.Background()
	require.NoError(t, users.PutUser(ctx, entities.User{Id: "user-c", Username: "carol"}))

	created, err := svc.CreateMatch(ctx, "user-a", "easy")
	require.NoError(t, err)
	_, err = svc.JoinMatch(ctx, created.Id, "user-b")
	require.NoError(t, err)

	_, err = svc.CompleteMatch(ctx, created.Id, "user-c")
	require.ErrorIs(t, err, ErrWinnerNotInMatch)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCompleteMatchSurvivesCounterFailure(t *testing.T) {
	svc, _, users, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateMatch(ctx, "user-a", "easy")
	require.NoError(t, err)
	_, err = svc.JoinMatch(ctx, created.Id, "user-b")
	require.NoError(t, err)

	users.failIncrements = true
	completed, err := svc.CompleteMatch(ctx, created.Id, "user-b")
	require.NoError(t, err, "stats bookkeeping is best-effort")
	assert.Equal(t, "user-b", completed.WinnerId)
	assert.False(t, completed.IsActive)
}

func TestFullLifecycleScenario(t *testing.T) {
	svc, matches, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateMatch(ctx, "user-a", "medium")
	require.NoError(t, err)
	_, err = svc.JoinMatch(ctx, created.Id, "user-b")
	require.NoError(t, err)
	_, err = svc.CompleteMatch(ctx, created.Id, "user-a")
	require.NoError(t, err)

	final, err := matches.GetMatch(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "user-a", final.PlayerAId)
	assert.Equal(t, "user-b", final.PlayerBId)
	assert.Equal(t, "user-a", final.WinnerId)
	assert.False(t, final.IsActive)
	assert.Contains(t, sentenceTiers["medium"], final.Sentence)
	require.NotNil(t, final.EndTime)
	assert.False(t, final.EndTime.Before(final.StartTime))
}

func TestUserMatchesSortedNewestFirst(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(2 * time.Hour), base.Add(time.Hour)}
	var ids []string
	for _, startAt := range times {
		svc.now = func() time.Time { return startAt }
		match, err := svc.CreateMatch(ctx, "user-a", "easy")
		require.NoError(t, err)
		ids = append(ids, match.Id)
	}

	matches, err := svc.UserMatches(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, ids[1], matches[0].Id)
	assert.Equal(t, ids[2], matches[1].Id)
	assert.Equal(t, ids[0], matches[2].Id)
}

func TestQueriesReturnEmptyNotError(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	active, err := svc.ActiveMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	history, err := svc.UserMatches(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = svc.MatchById(ctx, "missing")
	require.ErrorIs(t, err, ErrMatchNotFound)
}
