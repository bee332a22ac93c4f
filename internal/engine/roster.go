package engine

import (
	"slices"
	"strings"
)

// Join seats a named player in the next free seat and returns the updated
// game and the seat index. Joining again with a seated name returns that
// seat and leaves the game as it was.
func (g *Game) Join(name string) (*Game, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, -1, ErrInvalidName
	}
	if seat, ok := g.Seat(name); ok {
		return g, seat, nil
	}
	if len(g.PlayerNames) >= len(g.Players) {
		return nil, -1, ErrTableFull
	}
	next := g.Clone()
	next.PlayerNames = append(next.PlayerNames, name)
	return next, len(next.PlayerNames) - 1, nil
}

// Seat returns the seat held by name.
func (g *Game) Seat(name string) (int, bool) {
	i := slices.Index(g.PlayerNames, strings.TrimSpace(name))
	return i, i >= 0
}

// Seated reports whether every seat has a name.
func (g *Game) Seated() bool {
	return len(g.PlayerNames) == len(g.Players)
}
