package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
// These are used for client-server communication protocol
const (
	// Client to server messages
	MessageTypeCreateGame     MessageType = "create_game"
	MessageTypeJoinGame       MessageType = "join_game"
	MessageTypeStartHand      MessageType = "start_hand"
	MessageTypePlayerAction   MessageType = "player_action"
	MessageTypeBuyIn          MessageType = "buy_in"
	MessageTypeCashOut        MessageType = "cash_out"
	MessageTypeSendMessage    MessageType = "send_message"
	MessageTypeGetChatHistory MessageType = "get_chat_history"
	MessageTypeLeaveGame      MessageType = "leave_game"

	// Server to client messages
	MessageTypeGameCreated     MessageType = "game_created"
	MessageTypeGameJoined      MessageType = "game_joined"
	MessageTypePlayerJoined    MessageType = "player_joined"
	MessageTypeHandStarted     MessageType = "hand_started"
	MessageTypeGameUpdated     MessageType = "game_updated"
	MessageTypePlayerBoughtIn  MessageType = "player_bought_in"
	MessageTypeCashOutComplete MessageType = "cash_out_complete"
	MessageTypePlayerCashedOut MessageType = "player_cashed_out"
	MessageTypeChatMessage     MessageType = "chat_message"
	MessageTypeChatHistory     MessageType = "chat_history"
	MessageTypePlayerLeft      MessageType = "player_left"
	MessageTypeError           MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
