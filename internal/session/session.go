// Package session owns the persistent-across-hands state of one poker table
// and the registry that maps session IDs to tables. A session is a single
// logical resource with single-writer semantics: every operation takes the
// session mutex, completes synchronously, and never blocks on another
// player. Different sessions never contend.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/pokerroom/internal/deck"
	"github.com/lox/pokerroom/internal/game"
)

var (
	ErrSessionFull      = errors.New("session is full")
	ErrDuplicatePlayer  = errors.New("player already seated")
	ErrNotEnoughPlayers = errors.New("not enough players with chips")
	ErrNoActiveHand     = errors.New("no active hand")
	ErrHandInProgress   = errors.New("hand in progress")
	ErrPlayerNotFound   = errors.New("player not found")
)

// CashOutPolicy decides what happens when a player cashes out while a hand
// is live: reject the request, or fold them and forfeit the chips they have
// already committed to the pot.
type CashOutPolicy string

const (
	CashOutReject  CashOutPolicy = "reject"
	CashOutForfeit CashOutPolicy = "forfeit"
)

// Config is the fixed table configuration chosen at creation time.
type Config struct {
	Name          string
	MaxSeats      int
	SmallBlind    int
	BigBlind      int
	CashOutPolicy CashOutPolicy
}

// Validate checks the table configuration.
func (c Config) Validate() error {
	if c.MaxSeats < 2 || c.MaxSeats > 10 {
		return fmt.Errorf("max seats must be between 2 and 10, got %d", c.MaxSeats)
	}
	if c.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.SmallBlind)
	}
	if c.BigBlind <= c.SmallBlind {
		return fmt.Errorf("big blind %d must exceed small blind %d", c.BigBlind, c.SmallBlind)
	}
	switch c.CashOutPolicy {
	case CashOutReject, CashOutForfeit:
		return nil
	case "":
		return nil // defaulted to reject by New
	default:
		return fmt.Errorf("unknown cash-out policy %q", c.CashOutPolicy)
	}
}

// HandRecord is one hand-history entry.
type HandRecord struct {
	Result *game.Result `json:"result"`
	At     time.Time    `json:"at"`
}

// ChatMessage is one table chat entry.
type ChatMessage struct {
	ID         int       `json:"id"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Message    string    `json:"message"`
	At         time.Time `json:"timestamp"`
}

// CashOutResult reports the outcome of a cash-out. CashOutAmount is the
// stack collected by this operation; TotalBuyIn and NetResult cover the
// player's whole time at the table.
type CashOutResult struct {
	CashOutAmount int `json:"cashOutAmount"`
	TotalBuyIn    int `json:"totalBuyIn"`
	NetResult     int `json:"netResult"`
}

// Session is one table: seated players in fixed seat order, the chip
// ledger, dealer rotation, chat, hand history and at most one live hand.
type Session struct {
	mu       sync.Mutex
	id       string
	cfg      Config
	clock    quartz.Clock
	players  []*game.Player
	dealer   int
	hand     *game.Hand
	revealed bool // last hand went to showdown; its hole cards are public
	history  []HandRecord
	chat     []ChatMessage
}

// New creates an empty session.
func New(id string, cfg Config, clock quartz.Clock) *Session {
	if cfg.CashOutPolicy == "" {
		cfg.CashOutPolicy = CashOutReject
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Session{
		id:     id,
		cfg:    cfg,
		clock:  clock,
		dealer: -1,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Config returns the table configuration.
func (s *Session) Config() Config { return s.cfg }

// AddPlayer seats a new player with a buy-in. Seat positions are assigned
// in join order and never reused. Joining while a hand is live is allowed;
// the player is dealt in from the next hand.
func (s *Session) AddPlayer(id, name string, buyIn int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" || name == "" {
		return fmt.Errorf("player id and name are required")
	}
	if buyIn <= 0 {
		return fmt.Errorf("buy-in must be positive, got %d", buyIn)
	}
	if s.findPlayer(id) != nil {
		return fmt.Errorf("player %s: %w", id, ErrDuplicatePlayer)
	}
	if s.seatedCount() >= s.cfg.MaxSeats {
		return ErrSessionFull
	}

	s.players = append(s.players, &game.Player{
		ID:         id,
		Name:       name,
		Seat:       len(s.players),
		Chips:      buyIn,
		Folded:     s.hand != nil, // joined mid-hand: dealt in from the next hand
		TotalBuyIn: buyIn,
	})
	return nil
}

// StartHand begins a new hand: the dealer button advances to the next
// funded seat, the deck is rebuilt and shuffled, blinds post and hole cards
// go out.
func (s *Session) StartHand() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hand != nil {
		return ErrHandInProgress
	}
	if s.fundedCount() < 2 {
		return ErrNotEnoughPlayers
	}

	s.dealer = s.nextFunded(s.dealer + 1)
	s.revealed = false

	d := deck.New()
	d.Shuffle()

	hand, err := game.NewHand(s.players, s.dealer, s.cfg.SmallBlind, s.cfg.BigBlind, d)
	if err != nil {
		return fmt.Errorf("starting hand: %w", err)
	}
	s.hand = hand
	s.finishIfComplete()
	return nil
}

// ApplyAction validates and applies one betting action against the live
// hand. The error taxonomy of the betting engine passes straight through;
// on failure no state has changed.
func (s *Session) ApplyAction(playerID string, action game.Action, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hand == nil {
		return ErrNoActiveHand
	}
	if err := s.hand.Apply(playerID, action, amount); err != nil {
		return err
	}
	s.finishIfComplete()
	return nil
}

// BuyIn adds chips to a seated player and records it in the ledger.
// Returns the player's new stack.
func (s *Session) BuyIn(playerID string, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 {
		return 0, fmt.Errorf("buy-in must be positive, got %d", amount)
	}
	p := s.findPlayer(playerID)
	if p == nil {
		return 0, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	p.Chips += amount
	p.TotalBuyIn += amount
	return p.Chips, nil
}

// CashOut zeroes a player's stack and reports their net result. While the
// player is in a live hand the configured policy applies: reject the
// request, or fold them and forfeit their committed chips.
func (s *Session) CashOut(playerID string) (CashOutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cashOutLocked(playerID)
}

func (s *Session) cashOutLocked(playerID string) (CashOutResult, error) {
	p := s.findPlayer(playerID)
	if p == nil {
		return CashOutResult{}, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}

	if s.hand != nil && !p.Folded {
		if s.cfg.CashOutPolicy == CashOutReject {
			return CashOutResult{}, fmt.Errorf("cannot cash out mid-hand: %w", ErrHandInProgress)
		}
		s.hand.ForceFold(playerID)
		s.finishIfComplete()
	}

	cashed := p.Chips
	p.TotalCashOut += cashed
	p.Chips = 0
	return CashOutResult{
		CashOutAmount: cashed,
		TotalBuyIn:    p.TotalBuyIn,
		NetResult:     p.TotalCashOut - p.TotalBuyIn,
	}, nil
}

// RemovePlayer handles a leave or disconnect: the player is folded out of
// any live hand, cashed out, and their seat marked abandoned. The seat is
// never reassigned, so the remaining seat order is undisturbed.
func (s *Session) RemovePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPlayer(playerID)
	if p == nil {
		return fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	if s.hand != nil && !p.Folded {
		s.hand.ForceFold(playerID)
		s.finishIfComplete()
	}
	p.TotalCashOut += p.Chips
	p.Chips = 0
	p.Left = true
	return nil
}

// SendChat appends a chat message and returns it.
func (s *Session) SendChat(playerID, message string) (ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPlayer(playerID)
	if p == nil {
		return ChatMessage{}, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	if message == "" {
		return ChatMessage{}, fmt.Errorf("message is required")
	}
	msg := ChatMessage{
		ID:         len(s.chat) + 1,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Message:    message,
		At:         s.clock.Now(),
	}
	s.chat = append(s.chat, msg)
	return msg, nil
}

// ChatHistory returns a copy of the chat log.
func (s *Session) ChatHistory() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// History returns a copy of the hand history.
func (s *Session) History() []HandRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HandRecord, len(s.history))
	copy(out, s.history)
	return out
}

// PlayerIDs returns the IDs of all seats that have not left, for snapshot
// fan-out.
func (s *Session) PlayerIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, p := range s.players {
		if !p.Left {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// finishIfComplete folds a settled hand back into the session: the result
// is appended to the hand history and the hand slot frees up for the next
// StartHand. Hole cards become public only for hands that reached showdown.
func (s *Session) finishIfComplete() {
	if s.hand == nil || !s.hand.Complete() {
		return
	}
	result := s.hand.Result()
	s.revealed = !result.Uncontested && !result.Aborted
	s.history = append(s.history, HandRecord{Result: result, At: s.clock.Now()})
	s.hand = nil
}

func (s *Session) findPlayer(id string) *game.Player {
	for _, p := range s.players {
		if p.ID == id && !p.Left {
			return p
		}
	}
	return nil
}

func (s *Session) seatedCount() int {
	count := 0
	for _, p := range s.players {
		if !p.Left {
			count++
		}
	}
	return count
}

func (s *Session) fundedCount() int {
	count := 0
	for _, p := range s.players {
		if !p.Left && p.Chips > 0 {
			count++
		}
	}
	return count
}

// nextFunded returns the first seat at or after from with chips to play.
func (s *Session) nextFunded(from int) int {
	n := len(s.players)
	if from < 0 {
		from = 0
	}
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		p := s.players[seat]
		if !p.Left && p.Chips > 0 {
			return seat
		}
	}
	return 0
}
