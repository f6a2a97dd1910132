package server

import (
	"encoding/json"
	"time"

	"github.com/lox/pokerroom/internal/session"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type CreateGameData struct {
	RoomName   string `json:"roomName"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	MaxPlayers int    `json:"maxPlayers,omitempty"`
	SmallBlind int    `json:"smallBlind,omitempty"`
	BigBlind   int    `json:"bigBlind,omitempty"`
	BuyIn      int    `json:"buyIn"`
}

type JoinGameData struct {
	GameID     string `json:"gameId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	BuyIn      int    `json:"buyIn"`
}

type StartHandData struct {
	GameID string `json:"gameId"`
}

type PlayerActionData struct {
	GameID string `json:"gameId"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

type BuyInData struct {
	GameID string `json:"gameId"`
	Amount int    `json:"amount"`
}

type CashOutData struct {
	GameID string `json:"gameId"`
}

type SendMessageData struct {
	GameID  string `json:"gameId"`
	Message string `json:"message"`
}

type GetChatHistoryData struct {
	GameID string `json:"gameId"`
}

type LeaveGameData struct {
	GameID string `json:"gameId"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GameCreatedData struct {
	GameID    string           `json:"gameId"`
	RoomName  string           `json:"roomName"`
	GameState session.Snapshot `json:"gameState"`
}

type GameJoinedData struct {
	GameID    string           `json:"gameId"`
	GameState session.Snapshot `json:"gameState"`
}

type PlayerJoinedData struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type HandStartedData struct {
	GameState session.Snapshot `json:"gameState"`
}

// ActionInfo echoes the action that caused a state update.
type ActionInfo struct {
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
	Amount   int    `json:"amount,omitempty"`
}

type GameUpdatedData struct {
	GameState session.Snapshot `json:"gameState"`
	Action    *ActionInfo      `json:"action,omitempty"`
}

type PlayerBoughtInData struct {
	PlayerID string `json:"playerId"`
	Amount   int    `json:"amount"`
	NewChips int    `json:"newChips"`
}

type CashOutCompleteData struct {
	session.CashOutResult
}

type PlayerCashedOutData struct {
	PlayerID  string `json:"playerId"`
	NetResult int    `json:"netResult"`
}

type ChatMessageData struct {
	session.ChatMessage
}

type ChatHistoryData struct {
	Messages []session.ChatMessage `json:"messages"`
}

type PlayerLeftData struct {
	PlayerID string `json:"playerId"`
}
