// Package evaluator ranks poker hands of five to seven cards.
//
// Evaluation works on rank and suit bitmasks rather than enumerating the 21
// five-card combinations; the result is identical to taking the maximum over
// C(7,5). A Rank packs the hand category and the full five-rank tiebreak
// vector into a uint32, so comparing two Ranks with < and == compares hands
// exactly: equal Ranks are an exact tie for pot-splitting purposes.
package evaluator

import (
	"fmt"
	"math/bits"

	"github.com/lox/pokerroom/internal/deck"
)

// Category is the hand class, ordered weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Rank is a totally ordered hand strength: higher is better.
// Layout: category in bits 20-23, then five 4-bit tiebreak ranks
// (most significant first). Unused tiebreak slots are zero.
type Rank uint32

// Category extracts the hand category.
func (r Rank) Category() Category {
	return Category(r >> 20)
}

// String returns the display name of the rank's category.
func (r Rank) String() string {
	return r.Category().String()
}

func makeRank(cat Category, tiebreaks ...int) Rank {
	r := Rank(cat) << 20
	shift := 16
	for _, t := range tiebreaks {
		r |= Rank(t) << shift
		shift -= 4
	}
	return r
}

// Evaluate returns the strength of the best five-card hand within the given
// cards. Accepts 5, 6 or 7 cards; panics on fewer than 5 (a caller bug: the
// board is always complete before showdown).
func Evaluate(cards []deck.Card) Rank {
	if len(cards) < 5 {
		panic(fmt.Sprintf("evaluator: need at least 5 cards, got %d", len(cards)))
	}

	var suits [4]uint16 // bit r-2 set when rank r of that suit is present
	var counts [15]int  // counts[r] = copies of rank r (index 2..14)
	for _, c := range cards {
		suits[c.Suit] |= 1 << (int(c.Rank) - 2)
		counts[c.Rank]++
	}
	ranks := suits[0] | suits[1] | suits[2] | suits[3]

	// Straight flush (including the steel wheel)
	for _, suit := range suits {
		if bits.OnesCount16(suit) >= 5 {
			if high := straightHigh(suit); high > 0 {
				return makeRank(StraightFlush, high)
			}
		}
	}

	// Four of a kind: quad rank then best kicker
	if quad := highestWithCount(counts, 4); quad > 0 {
		kicker := highestExcluding(ranks, quad)
		return makeRank(FourOfAKind, quad, kicker)
	}

	// Full house: highest trips plus best remaining pair (which may itself
	// be the lower of two trips)
	trips := ranksWithCount(counts, 3)
	pairs := ranksWithCount(counts, 2)
	if len(trips) > 0 {
		pairRank := 0
		if len(trips) > 1 {
			pairRank = trips[1]
		}
		if len(pairs) > 0 && pairs[0] > pairRank {
			pairRank = pairs[0]
		}
		if pairRank > 0 {
			return makeRank(FullHouse, trips[0], pairRank)
		}
	}

	// Flush: top five ranks of the flush suit
	for _, suit := range suits {
		if bits.OnesCount16(suit) >= 5 {
			top := topRanks(suit, 5)
			return makeRank(Flush, top...)
		}
	}

	if high := straightHigh(ranks); high > 0 {
		return makeRank(Straight, high)
	}

	if len(trips) > 0 {
		kickers := topRanksExcluding(ranks, 2, trips[0])
		return makeRank(ThreeOfAKind, trips[0], kickers[0], kickers[1])
	}

	if len(pairs) >= 2 {
		kicker := topRanksExcluding(ranks, 1, pairs[0], pairs[1])
		return makeRank(TwoPair, pairs[0], pairs[1], kicker[0])
	}

	if len(pairs) == 1 {
		kickers := topRanksExcluding(ranks, 3, pairs[0])
		return makeRank(Pair, pairs[0], kickers[0], kickers[1], kickers[2])
	}

	top := topRanks(ranks, 5)
	return makeRank(HighCard, top...)
}

// straightHigh returns the high card rank of the best straight within the
// rank mask, or 0 if there is none. The wheel (A-2-3-4-5) counts with a
// high card of Five.
func straightHigh(ranks uint16) int {
	run := uint16(0x1F00) // A-K-Q-J-T
	for high := int(deck.Ace); high >= int(deck.Six); high-- {
		if ranks&run == run {
			return high
		}
		run >>= 1
	}
	const wheel = 0x100F // A,5,4,3,2
	if ranks&wheel == wheel {
		return int(deck.Five)
	}
	return 0
}

// topRanks returns the n highest ranks present in the mask, descending.
func topRanks(ranks uint16, n int) []int {
	out := make([]int, 0, n)
	for r := int(deck.Ace); r >= int(deck.Two) && len(out) < n; r-- {
		if ranks&(1<<(r-2)) != 0 {
			out = append(out, r)
		}
	}
	for len(out) < n {
		out = append(out, 0)
	}
	return out
}

func topRanksExcluding(ranks uint16, n int, exclude ...int) []int {
	mask := ranks
	for _, e := range exclude {
		mask &^= 1 << (e - 2)
	}
	return topRanks(mask, n)
}

func highestExcluding(ranks uint16, exclude int) int {
	return topRanksExcluding(ranks, 1, exclude)[0]
}

// highestWithCount returns the highest rank appearing exactly count times,
// or 0 if none does.
func highestWithCount(counts [15]int, count int) int {
	for r := int(deck.Ace); r >= int(deck.Two); r-- {
		if counts[r] == count {
			return r
		}
	}
	return 0
}

// ranksWithCount returns all ranks appearing exactly count times, descending.
func ranksWithCount(counts [15]int, count int) []int {
	var out []int
	for r := int(deck.Ace); r >= int(deck.Two); r-- {
		if counts[r] == count {
			out = append(out, r)
		}
	}
	return out
}
