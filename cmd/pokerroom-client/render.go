package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/pokerroom/internal/deck"
	"github.com/lox/pokerroom/internal/server"
	"github.com/lox/pokerroom/internal/session"
)

// renderer formats table snapshots for the terminal.
type renderer struct {
	header    lipgloss.Style
	redCard   lipgloss.Style
	blackCard lipgloss.Style
	turn      lipgloss.Style
	errStyle  lipgloss.Style
}

func newRenderer() *renderer {
	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).Profile)

	return &renderer{
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		redCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		blackCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		turn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		errStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
	}
}

func (r *renderer) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}

	var formatted []string
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, r.redCard.Render(card.String()))
		} else {
			formatted = append(formatted, r.blackCard.Render(card.String()))
		}
	}

	return "[" + strings.Join(formatted, " ") + "]"
}

func (r *renderer) snapshot(snap session.Snapshot, viewerID string) string {
	var b strings.Builder

	title := fmt.Sprintf("%s • %s • $%d/$%d", snap.Name, snap.Street, snap.SmallBlind, snap.BigBlind)
	b.WriteString(r.header.Render(title))
	b.WriteString("\n")

	if len(snap.CommunityCards) > 0 {
		fmt.Fprintf(&b, "Board: %s  Pot: $%d\n", r.formatCards(snap.CommunityCards), snap.Pot)
	} else if snap.Pot > 0 {
		fmt.Fprintf(&b, "Pot: $%d\n", snap.Pot)
	}
	if snap.BetToMatch > 0 {
		fmt.Fprintf(&b, "To call: $%d  Min raise to: $%d\n", snap.BetToMatch, snap.MinRaiseTo)
	}

	for _, p := range snap.Players {
		marker := "  "
		if p.Seat == snap.TurnIndex {
			marker = r.turn.Render("->")
		}
		status := ""
		if p.Folded {
			status = " (folded)"
		} else if p.AllIn {
			status = " (all-in)"
		}
		dealer := ""
		if p.Seat == snap.DealerIndex {
			dealer = " BTN"
		}
		you := ""
		if p.ID == viewerID {
			you = " (you)"
		}

		line := fmt.Sprintf("%s %s%s: $%d", marker, p.Name, you, p.Chips)
		if p.CurrentBet > 0 {
			line += fmt.Sprintf("  bet $%d", p.CurrentBet)
		}
		if len(p.HoleCards) > 0 {
			line += "  " + r.formatCards(p.HoleCards)
		}
		b.WriteString(line + status + dealer + "\n")
	}

	if snap.LastResult != nil {
		for _, award := range snap.LastResult.Awards {
			fmt.Fprintf(&b, "Pot of $%d to %s", award.Amount, strings.Join(award.Winners, ", "))
			if award.Rank != "" {
				fmt.Fprintf(&b, " with %s", award.Rank)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (r *renderer) action(a *server.ActionInfo) string {
	switch a.Action {
	case "raise":
		return fmt.Sprintf("%s raises to $%d\n", a.PlayerID, a.Amount)
	default:
		return fmt.Sprintf("%s %ss\n", a.PlayerID, a.Action)
	}
}

func (r *renderer) errorLine(code, message string) string {
	return r.errStyle.Render(fmt.Sprintf("error [%s]: %s", code, message)) + "\n"
}
