package game

import "github.com/lox/pokerroom/internal/deck"

// Player is one seat at a table. The seat index is fixed at join time and
// never reused while the session lives. A Player is owned by its session and
// mutated only by the betting engine and the buy-in/cash-out operations.
type Player struct {
	ID        string
	Name      string
	Seat      int
	Chips     int
	HoleCards []deck.Card
	Bet       int // chips committed this betting round
	TotalBet  int // chips committed this hand
	Folded    bool
	AllIn     bool
	Left      bool // seat abandoned; skipped when dealing new hands

	TotalBuyIn   int
	TotalCashOut int
}

// CanAct reports whether the player can still take betting actions.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn
}
