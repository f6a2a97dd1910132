package game

import (
	"fmt"

	"github.com/lox/pokerroom/internal/deck"
	"github.com/lox/pokerroom/internal/evaluator"
)

// Hand owns one playthrough from blind posting to pot award. It runs the
// street state machine (PREFLOP → FLOP → TURN → RIVER → SHOWDOWN), validates
// and applies betting actions, and settles the pots at the end. The players
// slice is the session's seats; the hand mutates chips and per-hand fields
// but never reorders it.
type Hand struct {
	players    []*Player
	dealer     int
	street     Street
	board      []deck.Card
	deck       *deck.Deck
	betting    *BettingRound
	active     int // seat whose turn it is, -1 when nobody can act
	smallBlind int
	bigBlind   int
	result     *Result
}

// PotAward records one pot's settlement.
type PotAward struct {
	Amount  int      `json:"amount"`
	Winners []string `json:"winners"` // player IDs, payout order
	Rank    string   `json:"rank,omitempty"`
}

// Result is the outcome of a completed hand.
type Result struct {
	Awards      []PotAward  `json:"awards"`
	Pot         int         `json:"pot"`
	Board       []deck.Card `json:"board"`
	Uncontested bool        `json:"uncontested"` // everyone else folded; no cards revealed
	Aborted     bool        `json:"aborted"`     // deck exhausted; contributions refunded
	Err         error       `json:"-"`
}

// NewHand starts a hand: per-hand player state is reset, blinds are posted
// and hole cards dealt. Players with no chips (or who have left) sit the
// hand out. The caller guarantees at least two players can be dealt in.
func NewHand(players []*Player, dealer, smallBlind, bigBlind int, d *deck.Deck) (*Hand, error) {
	h := &Hand{
		players:    players,
		dealer:     dealer,
		street:     Preflop,
		deck:       d,
		betting:    NewBettingRound(len(players), bigBlind),
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
	}

	for _, p := range players {
		p.HoleCards = nil
		p.Bet = 0
		p.TotalBet = 0
		p.AllIn = false
		p.Folded = p.Chips <= 0 || p.Left
	}

	bb := h.postBlinds()

	for _, p := range players {
		if p.Folded {
			continue
		}
		cards, err := d.Deal(2)
		if err != nil {
			h.abort(err)
			return nil, fmt.Errorf("dealing hole cards: %w", err)
		}
		p.HoleCards = cards
	}

	h.active = h.nextActive(bb + 1)
	if h.active == -1 {
		// Blinds put everyone all-in; run the board out.
		h.advanceStreet()
	}
	return h, nil
}

// postBlinds commits the small and big blinds from the two seats clockwise
// of the dealer, capped at each player's stack, and returns the big blind
// seat. betToMatch starts at the full big blind even when it is posted short.
func (h *Hand) postBlinds() int {
	sb := h.nextUnfolded(h.dealer + 1)
	bb := h.nextUnfolded(sb + 1)
	h.commit(h.players[sb], min(h.smallBlind, h.players[sb].Chips))
	h.commit(h.players[bb], min(h.bigBlind, h.players[bb].Chips))
	h.betting.CurrentBet = h.bigBlind
	return bb
}

func (h *Hand) commit(p *Player, amount int) {
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// Apply validates and applies one betting action. Failures return the
// violated rule and mutate nothing. On success the turn advances, and the
// street or hand is closed out when the round is complete.
func (h *Hand) Apply(playerID string, action Action, amount int) error {
	if h.result != nil {
		return ErrHandComplete
	}
	p := h.playerByID(playerID)
	if p == nil {
		return fmt.Errorf("player %s: %w", playerID, ErrUnknownPlayer)
	}
	if p.Folded {
		return fmt.Errorf("player %s has folded: %w", playerID, ErrIllegalAction)
	}
	if p.Seat != h.active {
		return fmt.Errorf("player %s: %w", playerID, ErrNotYourTurn)
	}

	br := h.betting
	switch action {
	case Fold:
		p.Folded = true

	case Check:
		if p.Bet != br.CurrentBet {
			return fmt.Errorf("cannot check, %d to call: %w", br.CurrentBet-p.Bet, ErrIllegalAction)
		}

	case Call:
		h.commit(p, min(br.CurrentBet-p.Bet, p.Chips))

	case Raise:
		target := amount // the new total bet this street
		if target <= br.CurrentBet {
			return fmt.Errorf("raise to %d must exceed current bet %d: %w", target, br.CurrentBet, ErrIllegalAction)
		}
		if target > p.Chips+p.Bet {
			return fmt.Errorf("raise to %d exceeds stack: %w", target, ErrIllegalAction)
		}
		allIn := target == p.Chips+p.Bet
		if target < br.CurrentBet+br.MinRaise && !allIn {
			return fmt.Errorf("raise to %d below minimum %d: %w", target, br.CurrentBet+br.MinRaise, ErrIllegalAction)
		}
		if target >= br.CurrentBet+br.MinRaise {
			br.MinRaise = target - br.CurrentBet
			br.Reopen(p.Seat)
		}
		br.CurrentBet = target
		h.commit(p, target-p.Bet)

	default:
		return fmt.Errorf("action %d: %w", action, ErrIllegalAction)
	}

	br.MarkActed(p.Seat)

	if h.unfoldedCount() == 1 {
		h.settle()
		return nil
	}

	h.active = h.nextActive(h.active + 1)
	if h.active == -1 || br.Complete(h.players) {
		h.advanceStreet()
	}
	return nil
}

// ForceFold folds a seat immediately, regardless of turn order. Used for
// leaves, disconnects and forfeiting cash-outs.
func (h *Hand) ForceFold(playerID string) {
	p := h.playerByID(playerID)
	if p == nil || p.Folded || h.result != nil {
		return
	}
	p.Folded = true
	h.betting.MarkActed(p.Seat)

	if h.unfoldedCount() == 1 {
		h.settle()
		return
	}
	if h.active == p.Seat {
		h.active = h.nextActive(p.Seat + 1)
	}
	if h.active == -1 || h.betting.Complete(h.players) {
		h.advanceStreet()
	}
}

// advanceStreet closes the current betting round: street bets reset, the
// next community cards are dealt and action restarts left of the dealer.
// When every remaining player is all-in it keeps dealing through to showdown.
func (h *Hand) advanceStreet() {
	for h.result == nil {
		for _, p := range h.players {
			p.Bet = 0
		}
		h.betting.Reset()

		switch h.street {
		case Preflop:
			if !h.dealBoard(3) {
				return
			}
			h.street = Flop
		case Flop:
			if !h.dealBoard(1) {
				return
			}
			h.street = Turn
		case Turn:
			if !h.dealBoard(1) {
				return
			}
			h.street = River
		case River:
			h.street = Showdown
			h.settle()
			return
		case Showdown:
			return
		}

		h.active = h.nextActive(h.dealer + 1)
		if h.active != -1 {
			return
		}
	}
}

func (h *Hand) dealBoard(n int) bool {
	cards, err := h.deck.Deal(n)
	if err != nil {
		h.abort(err)
		return false
	}
	h.board = append(h.board, cards...)
	return true
}

// abort ends the hand after an invariant violation (deck exhausted before a
// required deal): every player's contribution is returned and the hand is
// marked aborted.
func (h *Hand) abort(err error) {
	for _, p := range h.players {
		p.Chips += p.TotalBet
		p.TotalBet = 0
		p.Bet = 0
	}
	h.result = &Result{Aborted: true, Err: err, Board: h.Board()}
	h.active = -1
}

// settle partitions contributions into pots and pays them out. With one
// unfolded player the whole pot is awarded without evaluating or revealing
// cards; otherwise each pot goes to the best five-card hand among its
// eligible players, ties split evenly with odd chips assigned in seat order
// from the dealer's left.
func (h *Hand) settle() {
	pots := buildPots(h.players)
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	result := &Result{Pot: total, Board: h.Board()}

	if winner := h.soleUnfolded(); winner != nil {
		winner.Chips += total
		result.Uncontested = true
		result.Awards = []PotAward{{Amount: total, Winners: []string{winner.ID}}}
	} else {
		for _, pot := range pots {
			best := evaluator.Rank(0)
			var winners []int
			for _, seat := range pot.Eligible {
				p := h.players[seat]
				rank := evaluator.Evaluate(append(h.Board(), p.HoleCards...))
				switch {
				case rank > best:
					best = rank
					winners = []int{seat}
				case rank == best:
					winners = append(winners, seat)
				}
			}
			result.Awards = append(result.Awards, h.award(pot.Amount, winners, best))
		}
	}

	for _, p := range h.players {
		p.Bet = 0
		p.TotalBet = 0
	}
	h.active = -1
	h.result = result
}

// award splits a pot among the winning seats. The remainder chips go one
// each to the winners closest clockwise to the dealer.
func (h *Hand) award(amount int, seats []int, rank evaluator.Rank) PotAward {
	n := len(h.players)
	ordered := make([]int, len(seats))
	copy(ordered, seats)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0; j-- {
			a := (ordered[j] - h.dealer - 1 + n) % n
			b := (ordered[j-1] - h.dealer - 1 + n) % n
			if a < b {
				ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
			}
		}
	}

	share := amount / len(ordered)
	remainder := amount % len(ordered)
	ids := make([]string, len(ordered))
	for i, seat := range ordered {
		p := h.players[seat]
		p.Chips += share
		if i < remainder {
			p.Chips++
		}
		ids[i] = p.ID
	}
	return PotAward{Amount: amount, Winners: ids, Rank: rank.String()}
}

func (h *Hand) playerByID(id string) *Player {
	for _, p := range h.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// nextUnfolded returns the first seat at or after from that has not folded.
func (h *Hand) nextUnfolded(from int) int {
	n := len(h.players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if !h.players[seat].Folded {
			return seat
		}
	}
	return -1
}

// nextActive returns the first seat at or after from that can still act, or
// -1 after a full wrap finds none.
func (h *Hand) nextActive(from int) int {
	n := len(h.players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if h.players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

func (h *Hand) unfoldedCount() int {
	count := 0
	for _, p := range h.players {
		if !p.Folded {
			count++
		}
	}
	return count
}

func (h *Hand) soleUnfolded() *Player {
	var sole *Player
	for _, p := range h.players {
		if !p.Folded {
			if sole != nil {
				return nil
			}
			sole = p
		}
	}
	return sole
}

// Street returns the current street.
func (h *Hand) Street() Street { return h.street }

// Board returns a copy of the community cards.
func (h *Hand) Board() []deck.Card {
	board := make([]deck.Card, len(h.board))
	copy(board, h.board)
	return board
}

// Pot returns the chips contributed so far this hand, including bets not
// yet collected into a side pot. Zero once the hand is settled.
func (h *Hand) Pot() int {
	total := 0
	for _, p := range h.players {
		total += p.TotalBet
	}
	return total
}

// BetToMatch returns the current bet every live player must match.
func (h *Hand) BetToMatch() int { return h.betting.CurrentBet }

// MinRaiseTo returns the smallest legal raise-to amount.
func (h *Hand) MinRaiseTo() int { return h.betting.CurrentBet + h.betting.MinRaise }

// ActiveSeat returns whose turn it is, -1 when nobody can act.
func (h *Hand) ActiveSeat() int { return h.active }

// Dealer returns the dealer button seat.
func (h *Hand) Dealer() int { return h.dealer }

// Complete reports whether the hand has been settled.
func (h *Hand) Complete() bool { return h.result != nil }

// Result returns the settlement outcome, nil while the hand is live.
func (h *Hand) Result() *Result { return h.result }
