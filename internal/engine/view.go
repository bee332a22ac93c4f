package engine

import "github.com/google/uuid"

// ViewCard is a card as seen by one player. Color and Number are nil for the
// viewer's own cards.
type ViewCard struct {
	ID     uuid.UUID `json:"id"`
	Color  *Color    `json:"color"`
	Number *int      `json:"number"`
}

// PlayerViewData is the game state visible to one seat.
type PlayerViewData struct {
	PlayerNames  []string             `json:"player_names"`
	Players      [][]ViewCard         `json:"players"`
	DeckSize     int                  `json:"deck_size"`
	Discard      []Card               `json:"discard"`
	Played       map[Color]int        `json:"played"`
	GivenHints   map[uuid.UUID][]Fact `json:"given_hints"`
	Hints        int                  `json:"hints"`
	Fuses        int                  `json:"fuses"`
	Turn         int                  `json:"turn"`
	EndgameTurns int                  `json:"endgame_turns"`
	Moves        History              `json:"moves"`
	Phase        GamePhase            `json:"phase"`
	YourSeat     int                  `json:"your_seat"`
	IsYourTurn   bool                 `json:"is_your_turn"`
}

// ViewFor returns the state visible to seat. Pass -1 for a spectator, who
// sees every hand.
func (g *Game) ViewFor(seat int) PlayerViewData {
	c := g.Clone()
	pv := PlayerViewData{
		PlayerNames:  c.PlayerNames,
		Players:      make([][]ViewCard, len(c.Players)),
		DeckSize:     c.Deck.Len(),
		Discard:      c.Discard,
		Played:       c.Played,
		GivenHints:   c.GivenHints,
		Hints:        c.Hints,
		Fuses:        c.Fuses,
		Turn:         c.Turn,
		EndgameTurns: c.EndgameTurns,
		Moves:        c.Moves,
		Phase:        c.Phase(),
		YourSeat:     seat,
		IsYourTurn:   seat == c.Turn && !c.Over(),
	}
	for p, h := range c.Players {
		cards := make([]ViewCard, len(h.Cards))
		for i, card := range h.Cards {
			cards[i] = ViewCard{ID: card.ID}
			if p != seat {
				cards[i].Color = &card.Color
				cards[i].Number = &card.Number
			}
		}
		pv.Players[p] = cards
	}
	return pv
}
