package main

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerroom/internal/server"
)

type CLI struct {
	Server string `kong:"default='ws://localhost:3001/ws',help='WebSocket server URL'"`
	Name   string `kong:"default='',help='Display name (defaults to $USER or \"Player\")'"`
	Game   string `kong:"default='',help='Session ID to join (omit to create a new game)'"`
	Room   string `kong:"default='Poker Game',help='Room name when creating a game'"`
	BuyIn  int    `kong:"default='1000',help='Initial buy-in'"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerroom-client"),
		kong.Description("Interactive poker room client"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func (c *CLI) Run() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "Player"
	}

	cl := &client{
		name:     name,
		playerID: newPlayerID(name),
		render:   newRenderer(),
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.Server, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", c.Server, err)
	}
	defer func() { _ = conn.Close() }()
	cl.conn = conn

	done := make(chan struct{})
	go cl.readLoop(done)

	if c.Game != "" {
		cl.gameID = c.Game
		cl.send(server.MessageTypeJoinGame, server.JoinGameData{
			GameID:     c.Game,
			PlayerID:   cl.playerID,
			PlayerName: name,
			BuyIn:      c.BuyIn,
		})
	} else {
		cl.send(server.MessageTypeCreateGame, server.CreateGameData{
			RoomName:   c.Room,
			PlayerID:   cl.playerID,
			PlayerName: name,
			BuyIn:      c.BuyIn,
		})
	}

	fmt.Println("Commands: start, fold, check, call, raise <amount>, buyin <amount>,")
	fmt.Println("          cashout, say <msg>, chat, leave, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-done:
			return nil
		default:
		}
		if quit := cl.handleInput(scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

// newPlayerID generates a client-side player identity. The session ID is
// the shared secret for a game; player IDs only need to be unique at the
// table.
func newPlayerID(name string) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return strings.ToLower(name) + "-" + hex.EncodeToString(b[:])
}

type client struct {
	conn     *websocket.Conn
	name     string
	playerID string
	gameID   string
	render   *renderer
}

func (c *client) send(messageType server.MessageType, data interface{}) {
	msg, err := server.NewMessage(messageType, data)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		fmt.Println("error:", err)
	}
}

func (c *client) handleInput(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "start":
		c.send(server.MessageTypeStartHand, server.StartHandData{GameID: c.gameID})
	case "fold", "check", "call":
		c.send(server.MessageTypePlayerAction, server.PlayerActionData{GameID: c.gameID, Action: cmd})
	case "raise", "r":
		if len(args) == 0 {
			fmt.Println("usage: raise <amount>")
			return false
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("invalid amount:", args[0])
			return false
		}
		c.send(server.MessageTypePlayerAction, server.PlayerActionData{
			GameID: c.gameID, Action: "raise", Amount: amount,
		})
	case "buyin":
		if len(args) == 0 {
			fmt.Println("usage: buyin <amount>")
			return false
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("invalid amount:", args[0])
			return false
		}
		c.send(server.MessageTypeBuyIn, server.BuyInData{GameID: c.gameID, Amount: amount})
	case "cashout":
		c.send(server.MessageTypeCashOut, server.CashOutData{GameID: c.gameID})
	case "say":
		if len(args) == 0 {
			fmt.Println("usage: say <message>")
			return false
		}
		c.send(server.MessageTypeSendMessage, server.SendMessageData{
			GameID: c.gameID, Message: strings.Join(args, " "),
		})
	case "chat":
		c.send(server.MessageTypeGetChatHistory, server.GetChatHistoryData{GameID: c.gameID})
	case "leave":
		c.send(server.MessageTypeLeaveGame, server.LeaveGameData{GameID: c.gameID})
	case "quit", "q", "exit":
		return true
	case "help", "?":
		fmt.Println("Commands: start, fold, check, call, raise <amount>, buyin <amount>,")
		fmt.Println("          cashout, say <msg>, chat, leave, quit")
	default:
		fmt.Println("unknown command:", cmd)
	}
	return false
}

func (c *client) readLoop(done chan struct{}) {
	defer close(done)

	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			fmt.Println("connection closed:", err)
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *client) handleMessage(msg *server.Message) {
	switch msg.Type {
	case server.MessageTypeGameCreated:
		var data server.GameCreatedData
		if json.Unmarshal(msg.Data, &data) == nil {
			c.gameID = data.GameID
			fmt.Printf("Created game %q\n", data.RoomName)
			fmt.Printf("Session ID (share to invite): %s\n", data.GameID)
			fmt.Print(c.render.snapshot(data.GameState, c.playerID))
		}

	case server.MessageTypeGameJoined:
		var data server.GameJoinedData
		if json.Unmarshal(msg.Data, &data) == nil {
			c.gameID = data.GameID
			fmt.Printf("Joined game %q\n", data.GameState.Name)
			fmt.Print(c.render.snapshot(data.GameState, c.playerID))
		}

	case server.MessageTypePlayerJoined:
		var data server.PlayerJoinedData
		if json.Unmarshal(msg.Data, &data) == nil {
			fmt.Printf("%s joined the table\n", data.PlayerName)
		}

	case server.MessageTypeHandStarted, server.MessageTypeGameUpdated:
		var data server.GameUpdatedData
		if json.Unmarshal(msg.Data, &data) == nil {
			if data.Action != nil {
				fmt.Print(c.render.action(data.Action))
			}
			fmt.Print(c.render.snapshot(data.GameState, c.playerID))
		}

	case server.MessageTypePlayerBoughtIn:
		var data server.PlayerBoughtInData
		if json.Unmarshal(msg.Data, &data) == nil {
			fmt.Printf("%s bought in for $%d (stack $%d)\n", data.PlayerID, data.Amount, data.NewChips)
		}

	case server.MessageTypeCashOutComplete:
		var data server.CashOutCompleteData
		if json.Unmarshal(msg.Data, &data) == nil {
			fmt.Printf("Cashed out $%d (bought in $%d, net %+d)\n",
				data.CashOutAmount, data.TotalBuyIn, data.NetResult)
		}

	case server.MessageTypePlayerCashedOut:
		var data server.PlayerCashedOutData
		if json.Unmarshal(msg.Data, &data) == nil {
			fmt.Printf("%s cashed out (net %+d)\n", data.PlayerID, data.NetResult)
		}

	case server.MessageTypeChatMessage:
		var data server.ChatMessageData
		if json.Unmarshal(msg.Data, &data) == nil {
			fmt.Printf("[chat] %s: %s\n", data.PlayerName, data.Message)
		}

	case server.MessageTypeChatHistory:
		var data server.ChatHistoryData
		if json.Unmarshal(msg.Data, &data) == nil {
			for _, m := range data.Messages {
				fmt.Printf("[chat] %s: %s\n", m.PlayerName, m.Message)
			}
		}

	case server.MessageTypePlayerLeft:
		var data server.PlayerLeftData
		if json.Unmarshal(msg.Data, &data) == nil {
			fmt.Printf("%s left the table\n", data.PlayerID)
		}

	case server.MessageTypeError:
		var data server.ErrorData
		if json.Unmarshal(msg.Data, &data) == nil {
			fmt.Print(c.render.errorLine(data.Code, data.Message))
		}
	}
}
