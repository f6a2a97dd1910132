package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerroom/internal/session"
)

// Server is the WebSocket front end. It owns the connection registry and
// fans session snapshots out to clients; all game state lives behind the
// session registry, which redacts per viewer before anything reaches a
// connection.
type Server struct {
	config      *Config
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	registry    *session.Registry
	httpServer  *http.Server
}

// NewServer creates a new WebSocket server around a session registry.
func NewServer(config *Config, registry *session.Registry, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if config.Server.AllowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == config.Server.AllowedOrigin
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
		registry:    registry,
	}
}

// Start starts the WebSocket server and blocks until Stop is called.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:    s.config.ListenAddress(),
		Handler: mux,
	}

	s.logger.Info("Starting WebSocket server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop shuts the server down and closes all connections.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			_, ok := s.connections[conn]
			if ok {
				delete(s.connections, conn)
			}
			total := len(s.connections)
			s.mu.Unlock()

			if ok {
				s.cleanupConnection(conn)
				_ = conn.Close() // Ignore close errors during unregistration
				s.logger.Info("Client disconnected", "total", total)
			}

		case <-s.ctx.Done():
			return
		}
	}
}

// cleanupConnection removes a disconnected player from their game, which
// folds them out of any live hand and cashes out their stack.
func (s *Server) cleanupConnection(conn *Connection) {
	playerID := conn.GetPlayer()
	gameID := conn.GetGame()
	if playerID == "" || gameID == "" {
		return
	}

	sess, err := s.registry.Get(gameID)
	if err != nil {
		return
	}
	s.logger.Info("Cleaning up disconnected player", "player", playerID, "game", gameID)
	if err := sess.RemovePlayer(playerID); err != nil {
		return
	}

	s.BroadcastToGame(gameID, MessageTypePlayerLeft, PlayerLeftData{PlayerID: playerID})
	s.PushGameState(gameID, MessageTypeGameUpdated, nil)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register <- client
	client.Start()

	// Connection cleanup is handled by the connection itself
	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "ok",
		"activeGames": s.registry.Len(),
	})
}

// BroadcastToGame sends the same payload to every connection in a game.
// Only public data may go through here; anything containing table state
// must use PushGameState so each viewer gets their own redacted snapshot.
func (s *Server) BroadcastToGame(gameID string, messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		s.logger.Error("Failed to create broadcast message", "error", err, "type", messageType)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for conn := range s.connections {
		if conn.GetGame() == gameID {
			if err := conn.SendMessage(msg); err != nil {
				s.logger.Error("Failed to send message to client", "error", err, "player", conn.GetPlayer())
			} else {
				count++
			}
		}
	}

	s.logger.Debug("Broadcasted message to game", "gameId", gameID, "type", messageType, "recipients", count)
}

// PushGameState sends each connected player their own redacted snapshot of
// the game, wrapped in the given message type. The optional action echoes
// the betting action that triggered the update.
func (s *Server) PushGameState(gameID string, messageType MessageType, action *ActionInfo) {
	s.mu.RLock()
	conns := make([]*Connection, 0, len(s.connections))
	for conn := range s.connections {
		if conn.GetGame() == gameID && conn.GetPlayer() != "" {
			conns = append(conns, conn)
		}
	}
	s.mu.RUnlock()

	for _, conn := range conns {
		snapshot, err := s.registry.Snapshot(gameID, conn.GetPlayer())
		if err != nil {
			s.logger.Error("Failed to build snapshot", "error", err, "gameId", gameID)
			return
		}

		var data interface{}
		switch messageType {
		case MessageTypeHandStarted:
			data = HandStartedData{GameState: snapshot}
		default:
			data = GameUpdatedData{GameState: snapshot, Action: action}
		}

		msg, err := NewMessage(messageType, data)
		if err != nil {
			s.logger.Error("Failed to create state message", "error", err, "type", messageType)
			return
		}
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send state to client", "error", err, "player", conn.GetPlayer())
		}
	}
}

// Registry returns the session registry backing this server.
func (s *Server) Registry() *session.Registry {
	return s.registry
}

// GetConnectedPlayers returns a list of connected player IDs
func (s *Server) GetConnectedPlayers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var players []string
	for conn := range s.connections {
		if playerID := conn.GetPlayer(); playerID != "" {
			players = append(players, playerID)
		}
	}

	return players
}
