package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
)

var ErrInvalidPlayerCount = fmt.Errorf("player count must be between %d and %d", MinPlayers, MaxPlayers)

// ErrRejected matches every rejection returned by Apply and Join.
var ErrRejected = errors.New("move rejected")

var (
	ErrGameOver        = reject("game_over", "game is over")
	ErrInvalidPlayer   = reject("invalid_player", "no such player")
	ErrNotYourTurn     = reject("not_your_turn", "not your turn")
	ErrInvalidMove     = reject("invalid_move", "unknown move type")
	ErrCardNotInHand   = reject("card_not_in_hand", "card not in hand")
	ErrNoHints         = reject("no_hints", "no hint tokens left")
	ErrSelfHint        = reject("self_hint", "cannot hint yourself")
	ErrInvalidTarget   = reject("invalid_target", "no such hint target")
	ErrInvalidFact     = reject("invalid_fact", "hint must name a color or a number from 1 to 5")
	ErrNoMatchingCards = reject("no_matching_cards", "hint matches no cards")
	ErrTableFull       = reject("table_full", "all seats are taken")
	ErrInvalidName     = reject("invalid_name", "player name must not be empty")
)

// RejectionError is returned when a move or join is refused. The game it was
// applied to is left unchanged.
type RejectionError struct {
	Reason  string
	message string
}

func reject(reason, message string) *RejectionError {
	return &RejectionError{Reason: reason, message: message}
}

func (e *RejectionError) Error() string { return e.message }

func (e *RejectionError) Is(target error) bool { return target == ErrRejected }

// RejectReason returns the stable reason code of a rejection, or "" if err is
// not one.
func RejectReason(err error) string {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}

// Game holds the entire game state. A Game is treated as an immutable
// snapshot: Apply and Join return modified copies.
type Game struct {
	PlayerNames  []string             `json:"player_names"`
	Players      []Hand               `json:"players"`
	Deck         Deck                 `json:"deck"`
	Discard      []Card               `json:"discard"`
	Played       map[Color]int        `json:"played"`
	GivenHints   map[uuid.UUID][]Fact `json:"given_hints"`
	Hints        int                  `json:"hints"`
	Fuses        int                  `json:"fuses"`
	Turn         int                  `json:"turn"`
	EndgameTurns int                  `json:"endgame_turns"`
	Moves        History              `json:"moves"`
}

// NewGame shuffles a fresh deck and deals the opening hands.
func NewGame(numPlayers int, opts ...Option) (*Game, error) {
	if numPlayers < MinPlayers || numPlayers > MaxPlayers {
		return nil, ErrInvalidPlayerCount
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Game{
		PlayerNames:  []string{},
		Players:      make([]Hand, numPlayers),
		Deck:         NewDeck(cfg.Shuffler, cfg.NewID),
		Discard:      []Card{},
		Played:       make(map[Color]int),
		GivenHints:   make(map[uuid.UUID][]Fact),
		Hints:        MaxHints,
		Fuses:        MaxFuses,
		Turn:         0,
		EndgameTurns: numPlayers + 1,
		Moves:        History{},
	}

	size := HandSize(numPlayers)
	for p := range g.Players {
		g.Players[p].Cards = make([]Card, 0, size)
		for i := 0; i < size; i++ {
			card, _ := g.Deck.Draw()
			g.Players[p].Add(card)
		}
	}
	return g, nil
}

// NumPlayers returns the number of seats at the table.
func (g *Game) NumPlayers() int {
	return len(g.Players)
}

// Phase reports whether the game still accepts moves.
func (g *Game) Phase() GamePhase {
	switch {
	case g.Fuses == 0:
		return PhaseOutOfFuses
	case g.Deck.Len() == 0 && g.EndgameTurns == 0:
		return PhaseDeckExhausted
	default:
		return PhaseInProgress
	}
}

// Over reports whether the game is terminal.
func (g *Game) Over() bool {
	return g.Phase().Terminal()
}

// PlayedCount returns the number of cards on the played ladders.
func (g *Game) PlayedCount() int {
	n := 0
	for _, v := range g.Played {
		n += v
	}
	return n
}

// CardCount returns the number of cards accounted for across the deck, the
// hands, the discard pile and the played ladders. It is DeckSize for every
// reachable state.
func (g *Game) CardCount() int {
	n := g.Deck.Len() + len(g.Discard) + g.PlayedCount()
	for _, h := range g.Players {
		n += h.Len()
	}
	return n
}

// Clone returns a deep copy that shares no mutable storage with g.
func (g *Game) Clone() *Game {
	c := *g
	c.PlayerNames = slices.Clone(g.PlayerNames)
	c.Players = make([]Hand, len(g.Players))
	for i, h := range g.Players {
		c.Players[i] = h.clone()
	}
	c.Deck = slices.Clone(g.Deck)
	c.Discard = slices.Clone(g.Discard)
	c.Played = maps.Clone(g.Played)
	if c.Played == nil {
		c.Played = make(map[Color]int)
	}
	c.GivenHints = make(map[uuid.UUID][]Fact, len(g.GivenHints))
	for id, facts := range g.GivenHints {
		c.GivenHints[id] = slices.Clone(facts)
	}
	c.Moves = g.Moves.clone()
	return &c
}
