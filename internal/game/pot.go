package game

import "sort"

// Pot is a main or side pot: an amount and the seats eligible to win it.
// Pots are ordered by increasing all-in threshold, main pot first.
type Pot struct {
	Amount   int
	Eligible []int
}

// buildPots partitions the hand's contributions into side pots. Each all-in
// player's total contribution caps a layer; everyone's chips fill the layers
// bottom-up, and a layer is winnable only by non-folded players who
// contributed past its floor. Chips in a layer with no eligible player
// (possible when a force-folded player over-contributed) carry into the
// nearest pot that has one, so no chip is ever orphaned.
func buildPots(players []*Player) []Pot {
	var levels []int
	maxBet := 0
	for _, p := range players {
		if p.TotalBet > maxBet {
			maxBet = p.TotalBet
		}
		if p.AllIn && !p.Folded && p.TotalBet > 0 {
			levels = append(levels, p.TotalBet)
		}
	}
	if maxBet == 0 {
		return nil
	}

	sort.Ints(levels)
	levels = dedupe(levels)
	if len(levels) == 0 || levels[len(levels)-1] < maxBet {
		levels = append(levels, maxBet)
	}

	var pots []Pot
	carry := 0
	prev := 0
	for _, level := range levels {
		pot := Pot{Amount: carry}
		carry = 0
		for _, p := range players {
			contrib := p.TotalBet - prev
			if contrib <= 0 {
				continue
			}
			if contrib > level-prev {
				contrib = level - prev
			}
			pot.Amount += contrib
			if !p.Folded {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		if len(pot.Eligible) == 0 {
			carry = pot.Amount
		} else if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}
	if carry > 0 {
		if len(pots) > 0 {
			pots[len(pots)-1].Amount += carry
		} else {
			// Every contributor folded (both blinds force-folded before
			// anyone else acted). The carry becomes the whole pot, winnable
			// by whoever is still in the hand.
			pot := Pot{Amount: carry}
			for _, p := range players {
				if !p.Folded {
					pot.Eligible = append(pot.Eligible, p.Seat)
				}
			}
			pots = append(pots, pot)
		}
	}
	return pots
}

func dedupe(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
