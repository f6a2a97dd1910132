package deck

import (
	"encoding/json"
	"errors"
	mrand "math/rand/v2"
	"testing"
)

func TestNewDeckHas52DistinctCards(t *testing.T) {
	d := New()
	if d.Remaining() != 52 {
		t.Fatalf("Expected 52 cards, got %d", d.Remaining())
	}

	cards, err := d.Deal(52)
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	seen := make(map[Card]bool)
	for _, c := range cards {
		if seen[c] {
			t.Errorf("Duplicate card: %s", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("Expected 52 distinct cards, got %d", len(seen))
	}
}

func TestShufflePreservesCardSet(t *testing.T) {
	d := New()
	d.Shuffle()

	cards, err := d.Deal(52)
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	seen := make(map[Card]bool)
	for _, c := range cards {
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("Shuffle lost cards: %d distinct of 52", len(seen))
	}
}

func TestDealRemovesCards(t *testing.T) {
	d := New()

	first, err := d.Deal(2)
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}
	if d.Remaining() != 50 {
		t.Errorf("Expected 50 remaining, got %d", d.Remaining())
	}

	rest, err := d.Deal(50)
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}
	for _, c := range rest {
		if c == first[0] || c == first[1] {
			t.Errorf("Card %s dealt twice", c)
		}
	}
}

func TestDealInsufficientCards(t *testing.T) {
	d := New()
	if _, err := d.Deal(40); err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	_, err := d.Deal(13)
	if !errors.Is(err, ErrInsufficientCards) {
		t.Errorf("Expected ErrInsufficientCards, got %v", err)
	}
	if d.Remaining() != 12 {
		t.Errorf("Failed deal should not consume cards, %d remaining", d.Remaining())
	}
}

func TestWithRandIsDeterministic(t *testing.T) {
	d1 := New(WithRand(mrand.New(mrand.NewPCG(42, 0))))
	d2 := New(WithRand(mrand.New(mrand.NewPCG(42, 0))))
	d1.Shuffle()
	d2.Shuffle()

	c1, _ := d1.Deal(52)
	c2, _ := d2.Deal(52)
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("Seeded shuffles diverged at %d: %s vs %s", i, c1[i], c2[i])
		}
	}
}

func TestResetRebuildsFullDeck(t *testing.T) {
	d := New(WithRand(mrand.New(mrand.NewPCG(1, 0))))
	if _, err := d.Deal(30); err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	d.Reset()
	if d.Remaining() != 52 {
		t.Errorf("Expected 52 after reset, got %d", d.Remaining())
	}
}

// Deals many shuffled decks and checks that a fixed card ends up spread
// across positions rather than stuck near its origin. This catches the
// classic off-by-one Fisher-Yates bias of always swapping, not the subtle
// modulo bias, which needs far more samples than a unit test can afford.
func TestShuffleMovesCardsAround(t *testing.T) {
	target := NewCard(Spades, Ace)
	positions := make(map[int]bool)

	for i := 0; i < 100; i++ {
		d := New()
		d.Shuffle()
		cards, err := d.Deal(52)
		if err != nil {
			t.Fatalf("Deal failed: %v", err)
		}
		for pos, c := range cards {
			if c == target {
				positions[pos] = true
			}
		}
	}

	if len(positions) < 20 {
		t.Errorf("Ace of spades landed in only %d distinct positions over 100 shuffles", len(positions))
	}
}

func TestCardJSONRoundTrip(t *testing.T) {
	c := NewCard(Hearts, Ten)
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"suit":"hearts","rank":"10"}` {
		t.Errorf("Unexpected encoding: %s", data)
	}

	var back Card
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != c {
		t.Errorf("Round trip changed card: %s -> %s", c, back)
	}
}
