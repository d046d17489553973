package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sign-vn/slsign/internal/aws/storage"
	"github.com/sign-vn/slsign/internal/domains/dtos"
	"github.com/sign-vn/slsign/internal/domains/entities"
	"github.com/sign-vn/slsign/internal/game"
	"github.com/sign-vn/slsign/internal/recognition"
	"github.com/sign-vn/slsign/pkg/logging"
	"go.uber.org/zap"
)

func writeJson(w http.ResponseWriter, status int, resp dtos.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJson(w, status, dtos.ErrorResponse(message))
}

// writeServiceError maps the lifecycle error taxonomy onto status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var status int
	switch game.KindOf(err) {
	case game.KindNotFound:
		status = http.StatusNotFound
	case game.KindConflict:
		status = http.StatusConflict
	case game.KindInvalidState:
		status = http.StatusUnprocessableEntity
	case game.KindUnavailable:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}
	writeError(w, status, err.Error())
}

func (s *server) matchResponse(ctx context.Context, match entities.Match) dtos.MatchResponse {
	return dtos.MatchResponseFromEntity(match,
		s.game.Username(ctx, match.PlayerAId),
		s.game.Username(ctx, match.PlayerBId),
		s.game.Username(ctx, match.WinnerId),
	)
}

// matchListResponse resolves display names once per distinct participant.
func (s *server) matchListResponse(ctx context.Context, matches []entities.Match) []dtos.MatchResponse {
	names := make(map[string]string)
	resolve := func(userId string) string {
		if userId == "" {
			return ""
		}
		if name, ok := names[userId]; ok {
			return name
		}
		name := s.game.Username(ctx, userId)
		names[userId] = name
		return name
	}

	responses := make([]dtos.MatchResponse, 0, len(matches))
	for _, match := range matches {
		responses = append(responses, dtos.MatchResponseFromEntity(match,
			resolve(match.PlayerAId),
			resolve(match.PlayerBId),
			resolve(match.WinnerId),
		))
	}
	return responses
}

func (s *server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	caller, err := s.auth(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var req dtos.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	match, err := s.game.CreateMatch(r.Context(), caller.UserId, req.Difficulty)
	if err != nil {
		logging.Error("failed to create match", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJson(w, http.StatusOK,
		dtos.SuccessResponse(s.matchResponse(r.Context(), match), "Match created successfully"))
}

func (s *server) handleJoinMatch(w http.ResponseWriter, r *http.Request) {
	caller, err := s.auth(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var req dtos.JoinMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MatchId == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	match, err := s.game.JoinMatch(r.Context(), req.MatchId, caller.UserId)
	if err != nil {
		logging.Error("failed to join match",
			zap.String("match_id", req.MatchId), zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJson(w, http.StatusOK,
		dtos.SuccessResponse(s.matchResponse(r.Context(), match), "Joined match successfully"))
}

func (s *server) handleCompleteMatch(w http.ResponseWriter, r *http.Request) {
	caller, err := s.auth(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var req dtos.GameResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MatchId == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Results can only be reported for yourself.
	if req.UserId != "" && req.UserId != caller.UserId {
		writeError(w, http.StatusForbidden, "Cannot complete a match for another user")
		return
	}

	match, err := s.game.CompleteMatch(r.Context(), req.MatchId, caller.UserId)
	if err != nil {
		logging.Error("failed to complete match",
			zap.String("match_id", req.MatchId), zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJson(w, http.StatusOK,
		dtos.SuccessResponse(s.matchResponse(r.Context(), match), "Match completed successfully"))
}

func (s *server) handleActiveMatches(w http.ResponseWriter, r *http.Request) {
	if _, err := s.auth(r); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	matches, err := s.game.ActiveMatches(r.Context())
	if err != nil {
		logging.Error("failed to list active matches", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJson(w, http.StatusOK,
		dtos.SuccessResponse(s.matchListResponse(r.Context(), matches), "Active matches retrieved"))
}

func (s *server) handleUserMatches(w http.ResponseWriter, r *http.Request) {
	caller, err := s.auth(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	matches, err := s.game.UserMatches(r.Context(), caller.UserId)
	if err != nil {
		logging.Error("failed to list user matches", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJson(w, http.StatusOK,
		dtos.SuccessResponse(s.matchListResponse(r.Context(), matches), "User matches retrieved"))
}

func (s *server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if _, err := s.auth(r); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	match, err := s.game.MatchById(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJson(w, http.StatusOK,
		dtos.SuccessResponse(s.matchResponse(r.Context(), match), "Match retrieved successfully"))
}

func (s *server) handleAlphabet(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	exact := r.URL.Query().Get("exact") == "true"

	// Single letter lookup.
	if exact && len(search) == 1 {
		entry, err := s.storage.GetLetter(r.Context(), strings.ToUpper(search))
		if err != nil {
			if errors.Is(err, storage.ErrLetterNotFound) {
				writeError(w, http.StatusNotFound, "Letter '"+search+"' not found")
				return
			}
			logging.Error("failed to get letter", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJson(w, http.StatusOK,
			dtos.SuccessResponse(dtos.AlphabetResponseFromEntity(entry),
				"Retrieved data for letter '"+search+"'"))
		return
	}

	var (
		entries []entities.AlphabetEntry
		err     error
	)
	if search != "" {
		entries, err = s.storage.SearchAlphabet(r.Context(), search)
	} else {
		entries, err = s.storage.FetchAlphabet(r.Context())
	}
	if err != nil {
		logging.Error("failed to fetch alphabet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJson(w, http.StatusOK,
		dtos.SuccessResponse(dtos.AlphabetListResponseFromEntities(entries), "Alphabet retrieved"))
}

func (s *server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	caller, err := s.auth(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	targetId := r.PathValue("id")
	if targetId == "" || targetId == "me" {
		targetId = caller.UserId
	}

	user, err := s.storage.GetUser(r.Context(), targetId)
	if err != nil {
		if errors.Is(err, game.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		logging.Error("failed to get user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Users get their own record in full.
	full := targetId == caller.UserId
	writeJson(w, http.StatusOK,
		dtos.SuccessResponse(dtos.UserResponseFromEntity(user, full), "User retrieved"))
}

// handleSyncUser creates the participant record for a newly confirmed
// identity, from the token claims alone. Repeat calls are no-ops.
func (s *server) handleSyncUser(w http.ResponseWriter, r *http.Request) {
	caller, err := s.auth(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	user, err := s.storage.GetUser(r.Context(), caller.UserId)
	if err == nil {
		writeJson(w, http.StatusOK,
			dtos.SuccessResponse(dtos.UserResponseFromEntity(user, true), "User already registered"))
		return
	}
	if !errors.Is(err, game.ErrUserNotFound) {
		logging.Error("failed to sync user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	user = entities.User{
		Id:         caller.UserId,
		Username:   caller.Username,
		Email:      caller.Email,
		DateJoined: time.Now().UTC(),
	}
	if err := s.storage.PutUser(r.Context(), user); err != nil {
		logging.Error("failed to sync user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logging.Info("user registered", zap.String("user_id", user.Id))
	writeJson(w, http.StatusOK,
		dtos.SuccessResponse(dtos.UserResponseFromEntity(user, true), "User registered successfully"))
}

// handleRecognition forwards one frame to the external classifier so the
// browser only ever talks to this origin.
func (s *server) handleRecognition(w http.ResponseWriter, r *http.Request) {
	var req recognition.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prediction, err := s.recognition.Predict(r.Context(), req)
	if err != nil {
		logging.Error("recognition request failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "recognition service unavailable")
		return
	}
	writeJson(w, http.StatusOK, dtos.SuccessResponse(prediction, "Prediction complete"))
}
