package deck

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mrand "math/rand/v2"
)

// ErrInsufficientCards is returned when a deal asks for more cards than
// remain in the deck. Within a hand this means the dealing logic is broken,
// so callers treat it as fatal to the hand rather than recoverable.
var ErrInsufficientCards = errors.New("insufficient cards in deck")

// Deck is an ordered set of the 52 distinct cards. It shrinks as cards are
// dealt and is rebuilt at the start of every hand via Reset.
type Deck struct {
	cards []Card
	rng   *mrand.Rand // test hook; production decks draw from crypto/rand
}

// Option configures a Deck.
type Option func(*Deck)

// WithRand makes the shuffle deterministic for tests. Never used by the
// server path: live shuffles must come from a cryptographically strong
// source so no seat can predict the deal.
func WithRand(rng *mrand.Rand) Option {
	return func(d *Deck) {
		d.rng = rng
	}
}

// New creates a 52-card deck in canonical order (suits then ranks).
func New(opts ...Option) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for _, opt := range opts {
		opt(d)
	}
	d.build()
	return d
}

func (d *Deck) build() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle permutes the deck with a Fisher-Yates pass. Each swap index is
// drawn uniformly over [0, i] by rejection sampling, so all 52! orderings
// are equally likely up to the randomness of the source.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.uniform(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// uniform returns an unbiased random int in [0, n).
func (d *Deck) uniform(n int) int {
	if d.rng != nil {
		return int(d.rng.IntN(n))
	}
	// Reject the top sliver of the uint64 range that would wrap unevenly
	// under the modulo.
	limit := ^uint64(0) - (^uint64(0) % uint64(n))
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			panic(fmt.Sprintf("deck: crypto/rand failed: %v", err))
		}
		v := binary.BigEndian.Uint64(buf[:])
		if v < limit {
			return int(v % uint64(n))
		}
	}
}

// Deal removes and returns the first n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("deal %d cards: %w", n, ErrInsufficientCards)
	}
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards with %d remaining: %w", n, len(d.cards), ErrInsufficientCards)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Reset rebuilds the full 52-card deck and shuffles it.
func (d *Deck) Reset() {
	d.build()
	d.Shuffle()
}
