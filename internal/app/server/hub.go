package server

import (
	"context"
	"sync"

	"github.com/sign-vn/slsign/internal/domains/dtos"
	"github.com/sign-vn/slsign/internal/game"
	"github.com/sign-vn/slsign/pkg/logging"
	"go.uber.org/zap"
)

// jsonWriter is the slice of *websocket.Conn the hub needs; tests substitute
// a recorder.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

type client struct {
	conn     jsonWriter
	userId   string
	username string

	mu sync.Mutex
}

func (c *client) writeJson(msg interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.WriteJSON(msg)
}

// hubEvent is the wire shape of every server-pushed event: the response
// envelope plus a type tag the frontend switches on.
type hubEvent struct {
	Type string `json:"type"`
	dtos.Response
}

// hub groups live connections into channels keyed by match id and fans
// lifecycle events out to them. The membership maps are shared by every
// connection's callbacks and are guarded by a single mutex.
type hub struct {
	game *game.Service

	mu          sync.Mutex
	channels    map[string]map[*client]struct{}
	userMatches map[string]string
}

func newHub(gameService *game.Service) *hub {
	return &hub{
		game:        gameService,
		channels:    make(map[string]map[*client]struct{}),
		userMatches: make(map[string]string),
	}
}

// subscribe adds the client to a match channel after checking it belongs to
// the match. A client listens to one match at a time; subscribing again
// moves it.
func (h *hub) subscribe(ctx context.Context, c *client, matchId string) error {
	match, err := h.game.MatchById(ctx, matchId)
	if err != nil {
		return err
	}
	if !match.HasPlayer(c.userId) {
		return game.ErrWinnerNotInMatch
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if previous, ok := h.userMatches[c.userId]; ok {
		h.removeLocked(c, previous)
	}
	if h.channels[matchId] == nil {
		h.channels[matchId] = make(map[*client]struct{})
	}
	h.channels[matchId][c] = struct{}{}
	h.userMatches[c.userId] = matchId

	logging.Info("client subscribed",
		zap.String("user_id", c.userId),
		zap.String("match_id", matchId),
	)
	return nil
}

// disconnect revokes the client's subscription and tells the remaining
// channel members who dropped.
func (h *hub) disconnect(c *client) {
	h.mu.Lock()
	matchId, subscribed := h.userMatches[c.userId]
	if subscribed {
		delete(h.userMatches, c.userId)
		h.removeLocked(c, matchId)
	}
	h.mu.Unlock()

	if subscribed {
		h.Publish(matchId, game.Event{
			Type:    game.EventPlayerDisconnected,
			Message: "Player disconnected",
			Data:    c.userId,
		})
		logging.Info("client disconnected",
			zap.String("user_id", c.userId),
			zap.String("match_id", matchId),
		)
	}
}

func (h *hub) removeLocked(c *client, matchId string) {
	if members, ok := h.channels[matchId]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.channels, matchId)
		}
	}
}

// Publish delivers the event to every subscriber of the match channel.
// Delivery is best-effort: one broken connection never blocks the rest.
func (h *hub) Publish(matchId string, event game.Event) {
	h.PublishExcept(matchId, event, "")
}

func (h *hub) PublishExcept(matchId string, event game.Event, exceptUserId string) {
	h.mu.Lock()
	members := make([]*client, 0, len(h.channels[matchId]))
	for c := range h.channels[matchId] {
		if exceptUserId != "" && c.userId == exceptUserId {
			continue
		}
		members = append(members, c)
	}
	h.mu.Unlock()

	msg := hubEvent{
		Type:     event.Type,
		Response: dtos.SuccessResponse(event.Data, event.Message),
	}
	for _, c := range members {
		if err := c.writeJson(msg); err != nil {
			logging.Error("couldn't notify client",
				zap.String("user_id", c.userId),
				zap.String("match_id", matchId),
				zap.Error(err),
			)
		}
	}
}
