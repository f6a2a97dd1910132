package evaluator

import (
	"testing"

	"github.com/lox/pokerroom/internal/deck"
)

func card(rank deck.Rank, suit deck.Suit) deck.Card {
	return deck.NewCard(suit, rank)
}

func hand(cards ...deck.Card) []deck.Card {
	return cards
}

func TestCategoryDetection(t *testing.T) {
	tests := []struct {
		name     string
		cards    []deck.Card
		expected Category
	}{
		{
			name: "straight flush",
			cards: hand(
				card(deck.Nine, deck.Hearts), card(deck.Eight, deck.Hearts),
				card(deck.Seven, deck.Hearts), card(deck.Six, deck.Hearts),
				card(deck.Five, deck.Hearts), card(deck.Ace, deck.Spades),
				card(deck.Ace, deck.Clubs),
			),
			expected: StraightFlush,
		},
		{
			name: "four of a kind",
			cards: hand(
				card(deck.King, deck.Hearts), card(deck.King, deck.Diamonds),
				card(deck.King, deck.Clubs), card(deck.King, deck.Spades),
				card(deck.Two, deck.Hearts), card(deck.Seven, deck.Diamonds),
				card(deck.Nine, deck.Clubs),
			),
			expected: FourOfAKind,
		},
		{
			name: "full house",
			cards: hand(
				card(deck.Queen, deck.Hearts), card(deck.Queen, deck.Diamonds),
				card(deck.Queen, deck.Clubs), card(deck.Three, deck.Spades),
				card(deck.Three, deck.Hearts), card(deck.Eight, deck.Diamonds),
				card(deck.Nine, deck.Clubs),
			),
			expected: FullHouse,
		},
		{
			name: "two trips makes a full house",
			cards: hand(
				card(deck.Queen, deck.Hearts), card(deck.Queen, deck.Diamonds),
				card(deck.Queen, deck.Clubs), card(deck.Three, deck.Spades),
				card(deck.Three, deck.Hearts), card(deck.Three, deck.Diamonds),
				card(deck.Nine, deck.Clubs),
			),
			expected: FullHouse,
		},
		{
			name: "flush",
			cards: hand(
				card(deck.Ace, deck.Clubs), card(deck.Jack, deck.Clubs),
				card(deck.Eight, deck.Clubs), card(deck.Five, deck.Clubs),
				card(deck.Two, deck.Clubs), card(deck.King, deck.Hearts),
				card(deck.King, deck.Diamonds),
			),
			expected: Flush,
		},
		{
			name: "straight",
			cards: hand(
				card(deck.Nine, deck.Hearts), card(deck.Eight, deck.Clubs),
				card(deck.Seven, deck.Diamonds), card(deck.Six, deck.Spades),
				card(deck.Five, deck.Hearts), card(deck.Ace, deck.Spades),
				card(deck.Ace, deck.Clubs),
			),
			expected: Straight,
		},
		{
			name: "wheel straight",
			cards: hand(
				card(deck.Ace, deck.Hearts), card(deck.Two, deck.Clubs),
				card(deck.Three, deck.Diamonds), card(deck.Four, deck.Spades),
				card(deck.Five, deck.Hearts), card(deck.Nine, deck.Spades),
				card(deck.King, deck.Clubs),
			),
			expected: Straight,
		},
		{
			name: "three of a kind",
			cards: hand(
				card(deck.Seven, deck.Hearts), card(deck.Seven, deck.Clubs),
				card(deck.Seven, deck.Diamonds), card(deck.King, deck.Spades),
				card(deck.Two, deck.Hearts), card(deck.Nine, deck.Spades),
				card(deck.Four, deck.Clubs),
			),
			expected: ThreeOfAKind,
		},
		{
			name: "two pair",
			cards: hand(
				card(deck.Jack, deck.Hearts), card(deck.Jack, deck.Clubs),
				card(deck.Four, deck.Diamonds), card(deck.Four, deck.Spades),
				card(deck.Ace, deck.Hearts), card(deck.Nine, deck.Spades),
				card(deck.Two, deck.Clubs),
			),
			expected: TwoPair,
		},
		{
			name: "pair",
			cards: hand(
				card(deck.Ten, deck.Hearts), card(deck.Ten, deck.Clubs),
				card(deck.Ace, deck.Diamonds), card(deck.Eight, deck.Spades),
				card(deck.Six, deck.Hearts), card(deck.Three, deck.Spades),
				card(deck.Two, deck.Clubs),
			),
			expected: Pair,
		},
		{
			name: "high card",
			cards: hand(
				card(deck.Ace, deck.Hearts), card(deck.Jack, deck.Clubs),
				card(deck.Nine, deck.Diamonds), card(deck.Seven, deck.Spades),
				card(deck.Five, deck.Hearts), card(deck.Three, deck.Spades),
				card(deck.Two, deck.Clubs),
			),
			expected: HighCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank := Evaluate(tt.cards)
			if rank.Category() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, rank.Category())
			}
		})
	}
}

func TestCategoryOrdering(t *testing.T) {
	straightFlush := Evaluate(hand(
		card(deck.Six, deck.Hearts), card(deck.Five, deck.Hearts),
		card(deck.Four, deck.Hearts), card(deck.Three, deck.Hearts),
		card(deck.Two, deck.Hearts),
	))
	quads := Evaluate(hand(
		card(deck.Ace, deck.Hearts), card(deck.Ace, deck.Diamonds),
		card(deck.Ace, deck.Clubs), card(deck.Ace, deck.Spades),
		card(deck.King, deck.Hearts),
	))
	if straightFlush <= quads {
		t.Errorf("Lowest straight flush must beat ace quads: %x vs %x", straightFlush, quads)
	}

	trips := Evaluate(hand(
		card(deck.Two, deck.Hearts), card(deck.Two, deck.Clubs),
		card(deck.Two, deck.Diamonds), card(deck.Three, deck.Spades),
		card(deck.Four, deck.Hearts),
	))
	twoPair := Evaluate(hand(
		card(deck.Ace, deck.Hearts), card(deck.Ace, deck.Clubs),
		card(deck.King, deck.Diamonds), card(deck.King, deck.Spades),
		card(deck.Queen, deck.Hearts),
	))
	if trips <= twoPair {
		t.Errorf("Lowest trips must beat highest two pair: %x vs %x", trips, twoPair)
	}
}

func TestKickersBreakTies(t *testing.T) {
	// Same pair of kings, ace kicker vs queen kicker
	aceKicker := Evaluate(hand(
		card(deck.King, deck.Hearts), card(deck.King, deck.Clubs),
		card(deck.Ace, deck.Diamonds), card(deck.Eight, deck.Spades),
		card(deck.Four, deck.Hearts),
	))
	queenKicker := Evaluate(hand(
		card(deck.King, deck.Diamonds), card(deck.King, deck.Spades),
		card(deck.Queen, deck.Clubs), card(deck.Eight, deck.Hearts),
		card(deck.Four, deck.Clubs),
	))
	if aceKicker <= queenKicker {
		t.Errorf("Ace kicker must beat queen kicker: %x vs %x", aceKicker, queenKicker)
	}

	// Quads with different kickers
	aceOverQuads := Evaluate(hand(
		card(deck.Nine, deck.Hearts), card(deck.Nine, deck.Clubs),
		card(deck.Nine, deck.Diamonds), card(deck.Nine, deck.Spades),
		card(deck.Ace, deck.Hearts), card(deck.Two, deck.Clubs),
		card(deck.Three, deck.Diamonds),
	))
	kingOverQuads := Evaluate(hand(
		card(deck.Nine, deck.Hearts), card(deck.Nine, deck.Clubs),
		card(deck.Nine, deck.Diamonds), card(deck.Nine, deck.Spades),
		card(deck.King, deck.Hearts), card(deck.Two, deck.Clubs),
		card(deck.Three, deck.Diamonds),
	))
	if aceOverQuads <= kingOverQuads {
		t.Errorf("Quads kicker must break ties: %x vs %x", aceOverQuads, kingOverQuads)
	}
}

func TestExactTiesCompareEqual(t *testing.T) {
	// Both players play the board: identical straights in different suits
	board := hand(
		card(deck.Ten, deck.Hearts), card(deck.Nine, deck.Clubs),
		card(deck.Eight, deck.Diamonds), card(deck.Seven, deck.Spades),
		card(deck.Six, deck.Hearts),
	)
	a := Evaluate(append(hand(card(deck.Two, deck.Hearts), card(deck.Three, deck.Clubs)), board...))
	b := Evaluate(append(hand(card(deck.Two, deck.Spades), card(deck.Three, deck.Diamonds)), board...))
	if a != b {
		t.Errorf("Equal hands must compare equal: %x vs %x", a, b)
	}
}

func TestWheelLosesToSixHighStraight(t *testing.T) {
	wheel := Evaluate(hand(
		card(deck.Ace, deck.Hearts), card(deck.Two, deck.Clubs),
		card(deck.Three, deck.Diamonds), card(deck.Four, deck.Spades),
		card(deck.Five, deck.Hearts),
	))
	sixHigh := Evaluate(hand(
		card(deck.Two, deck.Hearts), card(deck.Three, deck.Spades),
		card(deck.Four, deck.Clubs), card(deck.Five, deck.Diamonds),
		card(deck.Six, deck.Clubs),
	))
	if wheel >= sixHigh {
		t.Errorf("Wheel must lose to six-high straight: %x vs %x", wheel, sixHigh)
	}
	if wheel.Category() != Straight {
		t.Errorf("Wheel must be a straight, got %s", wheel.Category())
	}
}

func TestBestFiveOfSeven(t *testing.T) {
	// Seven cards where the best hand ignores both hole cards
	rank := Evaluate(hand(
		card(deck.Ace, deck.Hearts), card(deck.King, deck.Hearts),
		card(deck.Queen, deck.Hearts), card(deck.Jack, deck.Hearts),
		card(deck.Ten, deck.Hearts), card(deck.Two, deck.Clubs),
		card(deck.Two, deck.Diamonds),
	))
	if rank.Category() != StraightFlush {
		t.Errorf("Expected royal flush, got %s", rank.Category())
	}
}

func TestEvaluatePanicsBelowFiveCards(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic with fewer than 5 cards")
		}
	}()
	Evaluate(hand(card(deck.Ace, deck.Hearts), card(deck.King, deck.Hearts)))
}
