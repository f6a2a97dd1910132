package server

import (
	"encoding/json"
	"errors"

	"github.com/lox/pokerroom/internal/game"
	"github.com/lox/pokerroom/internal/session"
)

// errorCode maps engine and session errors onto stable wire codes so
// clients can branch on the code instead of parsing messages.
func errorCode(err error) string {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return "game_not_found"
	case errors.Is(err, session.ErrSessionFull):
		return "game_full"
	case errors.Is(err, session.ErrDuplicatePlayer):
		return "duplicate_player"
	case errors.Is(err, session.ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, session.ErrNoActiveHand):
		return "no_active_hand"
	case errors.Is(err, session.ErrHandInProgress):
		return "hand_in_progress"
	case errors.Is(err, session.ErrPlayerNotFound), errors.Is(err, game.ErrUnknownPlayer):
		return "player_not_found"
	case errors.Is(err, game.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, game.ErrIllegalAction):
		return "illegal_action"
	case errors.Is(err, game.ErrHandComplete):
		return "hand_complete"
	default:
		return "invalid_request"
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}

func (c *Connection) sendErr(err error) {
	c.sendError(errorCode(err), err.Error())
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case MessageTypeCreateGame:
		var data CreateGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse create game data")
			return
		}
		c.handleCreateGame(data)

	case MessageTypeJoinGame:
		var data JoinGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join game data")
			return
		}
		c.handleJoinGame(data)

	case MessageTypeStartHand:
		var data StartHandData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse start hand data")
			return
		}
		c.handleStartHand(data)

	case MessageTypePlayerAction:
		var data PlayerActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse player action data")
			return
		}
		c.handlePlayerAction(data)

	case MessageTypeBuyIn:
		var data BuyInData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse buy in data")
			return
		}
		c.handleBuyIn(data)

	case MessageTypeCashOut:
		var data CashOutData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse cash out data")
			return
		}
		c.handleCashOut(data)

	case MessageTypeSendMessage:
		var data SendMessageData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse chat data")
			return
		}
		c.handleSendMessage(data)

	case MessageTypeGetChatHistory:
		var data GetChatHistoryData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse chat history request")
			return
		}
		c.handleGetChatHistory(data)

	case MessageTypeLeaveGame:
		var data LeaveGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse leave game data")
			return
		}
		c.handleLeaveGame(data)

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// gameSession resolves a request's game ID against the connection's joined
// game. The session ID is the access token: a connection can only operate
// on the game it created or joined.
func (c *Connection) gameSession(gameID string) (*session.Session, bool) {
	if c.GetPlayer() == "" || c.GetGame() == "" {
		c.sendError("not_in_game", "Must create or join a game first")
		return nil, false
	}
	if gameID != c.GetGame() {
		c.sendError("not_in_game", "Not a member of this game")
		return nil, false
	}

	sess, err := c.server.Registry().Get(gameID)
	if err != nil {
		c.sendErr(err)
		return nil, false
	}
	return sess, true
}

func (c *Connection) handleCreateGame(data CreateGameData) {
	c.logger.Info("Create game request", "roomName", data.RoomName, "player", data.PlayerName)

	if data.PlayerID == "" || data.PlayerName == "" {
		c.sendError("invalid_request", "Player ID and name are required")
		return
	}
	if c.GetGame() != "" {
		c.sendError("already_in_game", "Leave the current game first")
		return
	}

	cfg := session.Config{
		Name:          data.RoomName,
		MaxSeats:      data.MaxPlayers,
		SmallBlind:    data.SmallBlind,
		BigBlind:      data.BigBlind,
		CashOutPolicy: session.CashOutPolicy(c.server.config.Game.CashOutPolicy),
	}
	if cfg.Name == "" {
		cfg.Name = "Poker Game"
	}
	if cfg.MaxSeats == 0 {
		cfg.MaxSeats = 10
	}
	if cfg.SmallBlind == 0 {
		cfg.SmallBlind = 10
	}
	if cfg.BigBlind == 0 {
		cfg.BigBlind = cfg.SmallBlind * 2
	}

	sess, err := c.server.Registry().Create(cfg)
	if err != nil {
		c.sendErr(err)
		return
	}
	if err := sess.AddPlayer(data.PlayerID, data.PlayerName, data.BuyIn); err != nil {
		c.server.Registry().Delete(sess.ID())
		c.sendErr(err)
		return
	}

	c.SetPlayer(data.PlayerID)
	c.SetGame(sess.ID())

	response, _ := NewMessage(MessageTypeGameCreated, GameCreatedData{
		GameID:    sess.ID(),
		RoomName:  cfg.Name,
		GameState: sess.Snapshot(data.PlayerID),
	})
	_ = c.SendMessage(response) // Ignore send errors
}

func (c *Connection) handleJoinGame(data JoinGameData) {
	c.logger.Info("Join game request", "gameId", data.GameID, "player", data.PlayerName)

	if data.PlayerID == "" || data.PlayerName == "" {
		c.sendError("invalid_request", "Player ID and name are required")
		return
	}
	if c.GetGame() != "" {
		c.sendError("already_in_game", "Leave the current game first")
		return
	}

	sess, err := c.server.Registry().Get(data.GameID)
	if err != nil {
		c.sendErr(err)
		return
	}
	if err := sess.AddPlayer(data.PlayerID, data.PlayerName, data.BuyIn); err != nil {
		c.sendErr(err)
		return
	}

	c.SetPlayer(data.PlayerID)
	c.SetGame(data.GameID)

	response, _ := NewMessage(MessageTypeGameJoined, GameJoinedData{
		GameID:    data.GameID,
		GameState: sess.Snapshot(data.PlayerID),
	})
	_ = c.SendMessage(response) // Ignore send errors

	c.server.BroadcastToGame(data.GameID, MessageTypePlayerJoined, PlayerJoinedData{
		PlayerID:   data.PlayerID,
		PlayerName: data.PlayerName,
	})
	c.server.PushGameState(data.GameID, MessageTypeGameUpdated, nil)
}

func (c *Connection) handleStartHand(data StartHandData) {
	sess, ok := c.gameSession(data.GameID)
	if !ok {
		return
	}

	if err := sess.StartHand(); err != nil {
		c.sendErr(err)
		return
	}

	c.logger.Info("Hand started", "gameId", data.GameID)
	c.server.PushGameState(data.GameID, MessageTypeHandStarted, nil)
}

func (c *Connection) handlePlayerAction(data PlayerActionData) {
	sess, ok := c.gameSession(data.GameID)
	if !ok {
		return
	}

	action, err := game.ParseAction(data.Action)
	if err != nil {
		c.sendErr(err)
		return
	}

	playerID := c.GetPlayer()
	if err := sess.ApplyAction(playerID, action, data.Amount); err != nil {
		c.sendErr(err)
		return
	}

	c.logger.Info("Player action", "gameId", data.GameID, "player", playerID,
		"action", data.Action, "amount", data.Amount)
	c.server.PushGameState(data.GameID, MessageTypeGameUpdated, &ActionInfo{
		PlayerID: playerID,
		Action:   data.Action,
		Amount:   data.Amount,
	})
}

func (c *Connection) handleBuyIn(data BuyInData) {
	sess, ok := c.gameSession(data.GameID)
	if !ok {
		return
	}

	playerID := c.GetPlayer()
	newChips, err := sess.BuyIn(playerID, data.Amount)
	if err != nil {
		c.sendErr(err)
		return
	}

	c.server.BroadcastToGame(data.GameID, MessageTypePlayerBoughtIn, PlayerBoughtInData{
		PlayerID: playerID,
		Amount:   data.Amount,
		NewChips: newChips,
	})
	c.server.PushGameState(data.GameID, MessageTypeGameUpdated, nil)
}

func (c *Connection) handleCashOut(data CashOutData) {
	sess, ok := c.gameSession(data.GameID)
	if !ok {
		return
	}

	playerID := c.GetPlayer()
	result, err := sess.CashOut(playerID)
	if err != nil {
		c.sendErr(err)
		return
	}

	response, _ := NewMessage(MessageTypeCashOutComplete, CashOutCompleteData{CashOutResult: result})
	_ = c.SendMessage(response) // Ignore send errors

	c.server.BroadcastToGame(data.GameID, MessageTypePlayerCashedOut, PlayerCashedOutData{
		PlayerID:  playerID,
		NetResult: result.NetResult,
	})
	c.server.PushGameState(data.GameID, MessageTypeGameUpdated, nil)
}

func (c *Connection) handleSendMessage(data SendMessageData) {
	sess, ok := c.gameSession(data.GameID)
	if !ok {
		return
	}

	msg, err := sess.SendChat(c.GetPlayer(), data.Message)
	if err != nil {
		c.sendErr(err)
		return
	}

	c.server.BroadcastToGame(data.GameID, MessageTypeChatMessage, ChatMessageData{ChatMessage: msg})
}

func (c *Connection) handleGetChatHistory(data GetChatHistoryData) {
	sess, ok := c.gameSession(data.GameID)
	if !ok {
		return
	}

	response, _ := NewMessage(MessageTypeChatHistory, ChatHistoryData{
		Messages: sess.ChatHistory(),
	})
	_ = c.SendMessage(response) // Ignore send errors
}

func (c *Connection) handleLeaveGame(data LeaveGameData) {
	sess, ok := c.gameSession(data.GameID)
	if !ok {
		return
	}

	playerID := c.GetPlayer()
	if err := sess.RemovePlayer(playerID); err != nil {
		c.sendErr(err)
		return
	}
	c.SetGame("")

	c.logger.Info("Player left game", "gameId", data.GameID, "player", playerID)
	c.server.BroadcastToGame(data.GameID, MessageTypePlayerLeft, PlayerLeftData{PlayerID: playerID})
	c.server.PushGameState(data.GameID, MessageTypeGameUpdated, nil)
}
