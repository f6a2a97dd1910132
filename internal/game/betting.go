package game

// BettingRound holds the state of one street's betting. CurrentBet is the
// amount every live player must match; MinRaise is the size of the last
// raise increment (the big blind until someone raises), which sets the floor
// for the next raise under the no-limit minimum-raise rule.
type BettingRound struct {
	CurrentBet int
	MinRaise   int
	BigBlind   int
	Acted      []bool // seat has acted since the last full raise
}

// NewBettingRound creates betting state for a hand with numSeats seats.
func NewBettingRound(numSeats, bigBlind int) *BettingRound {
	return &BettingRound{
		MinRaise: bigBlind,
		BigBlind: bigBlind,
		Acted:    make([]bool, numSeats),
	}
}

// Reset prepares the betting state for a new street.
func (br *BettingRound) Reset() {
	br.CurrentBet = 0
	br.MinRaise = br.BigBlind
	for i := range br.Acted {
		br.Acted[i] = false
	}
}

// MarkActed records that a seat has acted this round.
func (br *BettingRound) MarkActed(seat int) {
	if seat >= 0 && seat < len(br.Acted) {
		br.Acted[seat] = true
	}
}

// Reopen clears acted flags for everyone but the raiser, forcing the other
// live players to respond to a full raise. Short all-in raises do not call
// this: they do not reopen the betting for players who already matched the
// previous bet.
func (br *BettingRound) Reopen(raiser int) {
	for i := range br.Acted {
		br.Acted[i] = i == raiser
	}
}

// Complete reports whether the betting round is closed: every player who is
// neither folded nor all-in has matched CurrentBet and has had a turn since
// the last full raise. The acted flags give the big blind their preflop
// option even when everyone limps. Zero or one live players also closes the
// round, provided the lone player has nothing left to call.
func (br *BettingRound) Complete(players []*Player) bool {
	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if p.Bet != br.CurrentBet || !br.Acted[p.Seat] {
			return false
		}
	}
	return true
}
