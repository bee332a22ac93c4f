package engine

import "github.com/google/uuid"

// Deck is the stack of undealt cards. The top of the deck is the last
// element.
type Deck []Card

// NewDeck builds the full 50-card deck and shuffles it.
func NewDeck(shuffler Shuffler, newID func() uuid.UUID) Deck {
	d := make(Deck, 0, DeckSize)
	for _, color := range AllColors() {
		for number := 1; number <= MaxNumber; number++ {
			for i := 0; i < copiesPerNumber[number]; i++ {
				d = append(d, Card{ID: newID(), Color: color, Number: number})
			}
		}
	}
	d.Shuffle(shuffler)
	return d
}

func (d Deck) Shuffle(s Shuffler) {
	s.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw pops the top card. ok is false when the deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	n := len(*d)
	if n == 0 {
		return Card{}, false
	}
	card = (*d)[n-1]
	*d = (*d)[:n-1]
	return card, true
}

// Len returns the number of cards remaining.
func (d Deck) Len() int {
	return len(d)
}

// Peek returns the top card without removing it.
func (d Deck) Peek() (Card, bool) {
	if len(d) == 0 {
		return Card{}, false
	}
	return d[len(d)-1], true
}
