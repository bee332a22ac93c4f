package engine

import (
	"slices"

	"github.com/google/uuid"
)

// Hand is the cards one player holds, oldest first.
type Hand struct {
	Cards []Card `json:"cards"`
}

// Len returns the number of cards held.
func (h Hand) Len() int {
	return len(h.Cards)
}

// Find returns the held card with the given ID.
func (h Hand) Find(id uuid.UUID) (Card, bool) {
	for _, c := range h.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// Remove takes the card with the given ID out of the hand, returns true if found.
func (h *Hand) Remove(id uuid.UUID) (Card, bool) {
	for i, c := range h.Cards {
		if c.ID == id {
			h.Cards = slices.Delete(h.Cards, i, i+1)
			return c, true
		}
	}
	return Card{}, false
}

// Add appends a newly drawn card.
func (h *Hand) Add(c Card) {
	h.Cards = append(h.Cards, c)
}

// Matching returns the held cards a hint fact applies to, in hand order.
func (h Hand) Matching(f Fact) []Card {
	var out []Card
	for _, c := range h.Cards {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func (h Hand) clone() Hand {
	return Hand{Cards: slices.Clone(h.Cards)}
}
