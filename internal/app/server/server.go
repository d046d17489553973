package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sign-vn/slsign/internal/aws/storage"
	"github.com/sign-vn/slsign/internal/domains/dtos"
	"github.com/sign-vn/slsign/internal/game"
	"github.com/sign-vn/slsign/internal/recognition"
	"github.com/sign-vn/slsign/pkg/logging"
	"go.uber.org/zap"
)

type server struct {
	address  string
	upgrader websocket.Upgrader

	config      Config
	game        *game.Service
	hub         *hub
	storage     *storage.Client
	recognition *recognition.Client
}

type payload struct {
	Type string            `json:"type"`
	Data map[string]string `json:"data"`
}

func NewServer(
	cfg Config,
	gameService *game.Service,
	storageClient *storage.Client,
	recognitionClient *recognition.Client,
) *server {
	srv := &server{
		address: "0.0.0.0:" + cfg.Port,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == cfg.AllowedOrigin
			},
		},
		config:      cfg,
		game:        gameService,
		hub:         newHub(gameService),
		storage:     storageClient,
		recognition: recognitionClient,
	}
	gameService.SetPublisher(srv.hub)
	return srv
}

// Start method    registers the routes and starts the backend server
func (s *server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/game/create", s.handleCreateMatch)
	mux.HandleFunc("POST /api/game/join", s.handleJoinMatch)
	mux.HandleFunc("POST /api/game/complete", s.handleCompleteMatch)
	mux.HandleFunc("GET /api/game/active", s.handleActiveMatches)
	mux.HandleFunc("GET /api/game/user", s.handleUserMatches)
	mux.HandleFunc("GET /api/game/{id}", s.handleGetMatch)
	mux.HandleFunc("GET /api/alphabet", s.handleAlphabet)
	mux.HandleFunc("GET /api/user/{id}", s.handleGetUser)
	mux.HandleFunc("POST /api/user/sync", s.handleSyncUser)
	mux.HandleFunc("POST /api/recognition", s.handleRecognition)
	mux.HandleFunc("GET /hub/game", s.handleHub)

	logging.Info("server started", zap.String("port", s.config.Port))
	return http.ListenAndServe(s.address, s.cors(mux))
}

func (s *server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.config.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHub upgrades the connection and runs its read loop until the client
// goes away. Subscriptions are revoked on any read error.
func (s *server) handleHub(w http.ResponseWriter, r *http.Request) {
	caller, err := s.auth(r)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(err.Error()))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &client{
		conn:     conn,
		userId:   caller.UserId,
		username: caller.Username,
	}
	logging.Info("client connected", zap.String("user_id", c.userId))

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.disconnect(c)
			logging.Info("connection closed",
				zap.String("user_id", c.userId),
				zap.Error(err),
			)
			break
		}

		var p payload
		if err := json.Unmarshal(message, &p); err != nil {
			c.writeJson(hubEvent{
				Type:     "error",
				Response: dtos.ErrorResponse(ErrStatusInvalidPayload),
			})
			continue
		}
		s.handleHubMessage(r.Context(), c, p)
	}
}

func (s *server) handleHubMessage(ctx context.Context, c *client, p payload) {
	switch p.Type {
	case "subscribe":
		if err := s.hub.subscribe(ctx, c, p.Data["matchId"]); err != nil {
			c.writeJson(hubEvent{
				Type:     "error",
				Response: dtos.ErrorResponse(ErrStatusNotParticipant, err.Error()),
			})
		}
	case "complete_match":
		// The socket caller always reports itself as the winner, the same
		// contract as the REST complete route.
		if _, err := s.game.CompleteMatch(ctx, p.Data["matchId"], c.userId); err != nil {
			c.writeJson(hubEvent{
				Type:     "error",
				Response: dtos.ErrorResponse(ErrStatusCompletionFailed, err.Error()),
			})
		}
	default:
		logging.Info("invalid payload type", zap.String("type", p.Type))
	}
}
