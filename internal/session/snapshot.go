package session

import (
	"github.com/lox/pokerroom/internal/deck"
	"github.com/lox/pokerroom/internal/game"
)

// PlayerView is one seat as seen by a particular viewer.
type PlayerView struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Chips      int         `json:"chips"`
	CurrentBet int         `json:"currentBet"`
	Folded     bool        `json:"folded"`
	AllIn      bool        `json:"allIn"`
	Seat       int         `json:"seat"`
	HoleCards  []deck.Card `json:"holeCards"`
}

// Snapshot is the redacted view of a session for one viewer. Everything in
// it is public except hole cards, which appear only for the viewer's own
// seat or after the hand reaches showdown. This is the boundary that keeps
// card information from leaking: transports forward snapshots verbatim and
// never see unredacted state.
type Snapshot struct {
	SessionID      string       `json:"sessionId"`
	Name           string       `json:"name"`
	Street         string       `json:"street"`
	Players        []PlayerView `json:"players"`
	CommunityCards []deck.Card  `json:"communityCards"`
	Pot            int          `json:"pot"`
	BetToMatch     int          `json:"betToMatch"`
	MinRaiseTo     int          `json:"minRaiseTo"`
	DealerIndex    int          `json:"dealerIndex"`
	TurnIndex      int          `json:"turnIndex"`
	SmallBlind     int          `json:"smallBlind"`
	BigBlind       int          `json:"bigBlind"`
	LastResult     *game.Result `json:"lastResult,omitempty"`
}

// Snapshot builds the viewer's redacted view of the table.
func (s *Session) Snapshot(viewerID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:   s.id,
		Name:        s.cfg.Name,
		Street:      "waiting",
		DealerIndex: s.dealer,
		TurnIndex:   -1,
		SmallBlind:  s.cfg.SmallBlind,
		BigBlind:    s.cfg.BigBlind,
	}
	if s.hand != nil {
		snap.Street = s.hand.Street().String()
		snap.CommunityCards = s.hand.Board()
		snap.Pot = s.hand.Pot()
		snap.BetToMatch = s.hand.BetToMatch()
		snap.MinRaiseTo = s.hand.MinRaiseTo()
		snap.TurnIndex = s.hand.ActiveSeat()
	}
	if n := len(s.history); n > 0 && s.hand == nil {
		snap.LastResult = s.history[n-1].Result
		snap.CommunityCards = snap.LastResult.Board
	}

	showdown := s.hand != nil && s.hand.Street() == game.Showdown
	revealAll := showdown || (s.hand == nil && s.revealed)

	snap.Players = make([]PlayerView, 0, len(s.players))
	for _, p := range s.players {
		if p.Left {
			continue
		}
		view := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.Bet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			Seat:       p.Seat,
		}
		if p.ID == viewerID || (revealAll && !p.Folded) {
			view.HoleCards = append([]deck.Card(nil), p.HoleCards...)
		}
		snap.Players = append(snap.Players, view)
	}
	return snap
}
