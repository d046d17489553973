package game

import (
	"context"
	"sort"
	"time"

	"github.com/sign-vn/slsign/internal/domains/entities"
	"github.com/sign-vn/slsign/pkg/logging"
	"github.com/sign-vn/slsign/pkg/utils"
	"go.uber.org/zap"
)

// Service owns the match lifecycle: Pending (created, one player) -> Ready
// (joined, sentence assigned) -> Completed (winner set, frozen). Every
// mutation validates against the current store state before writing and
// publishes the resulting event to the match channel.
type Service struct {
	matches   MatchStore
	users     UserStore
	sentences *SentenceProvider
	publisher Publisher
	now       func() time.Time
}

func NewService(matches MatchStore, users UserStore, sentences *SentenceProvider) *Service {
	return &Service{
		matches:   matches,
		users:     users,
		sentences: sentences,
		now:       time.Now,
	}
}

// SetPublisher attaches the notification hub. The hub needs the service to
// validate subscriptions, so it is wired after construction.
func (s *Service) SetPublisher(publisher Publisher) {
	s.publisher = publisher
}

func (s *Service) CreateMatch(ctx context.Context, userId, difficulty string) (entities.Match, error) {
	if _, err := s.users.GetUser(ctx, userId); err != nil {
		return entities.Match{}, storeErr(err)
	}

	match := entities.Match{
		Id:         utils.GenerateUUID(),
		PlayerAId:  userId,
		Difficulty: s.sentences.NormalizeDifficulty(difficulty),
		StartTime:  s.now().UTC(),
		IsActive:   true,
	}
	if err := s.matches.PutMatch(ctx, match); err != nil {
		return entities.Match{}, storeErr(err)
	}

	logging.Info("match created",
		zap.String("match_id", match.Id),
		zap.String("player_a", userId),
		zap.String("difficulty", match.Difficulty),
	)
	return match, nil
}

func (s *Service) JoinMatch(ctx context.Context, matchId, userId string) (entities.Match, error) {
	match, err := s.matches.GetMatch(ctx, matchId)
	if err != nil {
		return entities.Match{}, storeErr(err)
	}
	if !match.IsActive {
		return entities.Match{}, ErrMatchNotActive
	}
	if match.PlayerAId == userId {
		return entities.Match{}, ErrSelfJoin
	}
	if match.PlayerBId != "" {
		return entities.Match{}, ErrMatchFull
	}
	user, err := s.users.GetUser(ctx, userId)
	if err != nil {
		return entities.Match{}, storeErr(err)
	}

	// Both players are present once this lands, so the sentence is chosen
	// here and written in the same conditional update that claims the slot.
	sentence := s.sentences.GetRandomSentence(match.Difficulty)
	if err := s.matches.AssignPlayerB(ctx, matchId, userId, sentence); err != nil {
		return entities.Match{}, storeErr(err)
	}
	match.PlayerBId = userId
	match.Sentence = sentence

	logging.Info("player joined match",
		zap.String("match_id", matchId),
		zap.String("player_b", userId),
	)

	s.publish(matchId, Event{
		Type:    EventPlayerJoined,
		Message: "Player joined the match",
		Data:    PlayerJoinedData{UserId: userId, Username: user.Username},
	}, userId)
	s.publish(matchId, Event{
		Type:    EventMatchStarted,
		Message: "Match started",
		Data: MatchStartedData{
			MatchId:  matchId,
			Sentence: sentence,
			PlayerA:  s.Username(ctx, match.PlayerAId),
			PlayerB:  user.Username,
		},
	}, "")
	return match, nil
}

func (s *Service) CompleteMatch(ctx context.Context, matchId, winnerId string) (entities.Match, error) {
	match, err := s.matches.GetMatch(ctx, matchId)
	if err != nil {
		return entities.Match{}, storeErr(err)
	}
	if !match.IsActive {
		return entities.Match{}, ErrMatchNotActive
	}
	if !match.HasPlayer(winnerId) {
		return entities.Match{}, ErrWinnerNotInMatch
	}
	winner, err := s.users.GetUser(ctx, winnerId)
	if err != nil {
		return entities.Match{}, storeErr(err)
	}

	endTime := s.now().UTC()
	if err := s.matches.SetWinner(ctx, matchId, winnerId, endTime); err != nil {
		return entities.Match{}, storeErr(err)
	}
	match.WinnerId = winnerId
	match.EndTime = &endTime
	match.IsActive = false

	// Stats bookkeeping is best-effort and must not fail the completion.
	s.incrementStats(ctx, match, winnerId)

	logging.Info("match completed",
		zap.String("match_id", matchId),
		zap.String("winner", winnerId),
	)

	s.publish(matchId, Event{
		Type:    EventMatchCompleted,
		Message: "Match completed",
		Data: MatchCompletedData{
			MatchId:        matchId,
			WinnerId:       winnerId,
			WinnerUsername: winner.Username,
		},
	}, "")
	return match, nil
}

func (s *Service) ActiveMatches(ctx context.Context) ([]entities.Match, error) {
	matches, err := s.matches.FetchActiveMatches(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return matches, nil
}

func (s *Service) MatchById(ctx context.Context, matchId string) (entities.Match, error) {
	match, err := s.matches.GetMatch(ctx, matchId)
	if err != nil {
		return entities.Match{}, storeErr(err)
	}
	return match, nil
}

// UserMatches returns the user's match history, newest first.
func (s *Service) UserMatches(ctx context.Context, userId string) ([]entities.Match, error) {
	matches, err := s.matches.FetchUserMatches(ctx, userId)
	if err != nil {
		return nil, storeErr(err)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].StartTime.After(matches[j].StartTime)
	})
	return matches, nil
}

// Username resolves a display name, empty when the user is unknown or the
// store is unreachable. Used for response building only.
func (s *Service) Username(ctx context.Context, userId string) string {
	if userId == "" {
		return ""
	}
	user, err := s.users.GetUser(ctx, userId)
	if err != nil {
		return ""
	}
	return user.Username
}

func (s *Service) publish(matchId string, event Event, exceptUserId string) {
	if s.publisher == nil {
		return
	}
	if exceptUserId != "" {
		s.publisher.PublishExcept(matchId, event, exceptUserId)
		return
	}
	s.publisher.Publish(matchId, event)
}

func (s *Service) incrementStats(ctx context.Context, match entities.Match, winnerId string) {
	if err := s.users.IncrementGamesWon(ctx, winnerId); err != nil {
		logging.Warn("failed to increment games won",
			zap.String("user_id", winnerId), zap.Error(err))
	}
	for _, playerId := range []string{match.PlayerAId, match.PlayerBId} {
		if playerId == "" {
			continue
		}
		if err := s.users.IncrementGamesPlayed(ctx, playerId); err != nil {
			logging.Warn("failed to increment games played",
				zap.String("user_id", playerId), zap.Error(err))
		}
	}
}
