package lobby

import (
	"sync"

	"github.com/WesleyAC/hanabi/internal/engine"
)

// Lobby is one hosted game. Its mutex serializes every change to the game;
// the stored state is replaced, never modified in place.
type Lobby struct {
	mu       sync.Mutex
	ID       string
	game     *engine.Game
	onChange func(id string, g *engine.Game)
}

// NewLobby wraps a freshly dealt game.
func NewLobby(id string, g *engine.Game) *Lobby {
	return &Lobby{ID: id, game: g}
}

// Snapshot returns a copy of the current state.
func (l *Lobby) Snapshot() *engine.Game {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.game.Clone()
}

// ViewFor returns the state as seen by the named player. Unknown names get
// the spectator view.
func (l *Lobby) ViewFor(name string) engine.PlayerViewData {
	l.mu.Lock()
	defer l.mu.Unlock()
	seat, ok := l.game.Seat(name)
	if !ok {
		seat = -1
	}
	return l.game.ViewFor(seat)
}

// Join seats a player and returns the seat index.
func (l *Lobby) Join(name string) (int, error) {
	var seat int
	err := l.update(func(g *engine.Game) (*engine.Game, error) {
		next, s, err := g.Join(name)
		seat = s
		return next, err
	})
	return seat, err
}

// Apply runs one move against the stored state and keeps the result if the
// move is accepted. It returns a copy of the new state.
func (l *Lobby) Apply(m engine.Move) (*engine.Game, error) {
	var out *engine.Game
	err := l.update(func(g *engine.Game) (*engine.Game, error) {
		next, err := g.Apply(m)
		if err == nil {
			out = next.Clone()
		}
		return next, err
	})
	return out, err
}

// ApplyAs is Apply for a move submitted by a named player; the seat is taken
// from the roster rather than trusted from the move.
func (l *Lobby) ApplyAs(name string, m engine.Move) (*engine.Game, error) {
	var out *engine.Game
	err := l.update(func(g *engine.Game) (*engine.Game, error) {
		seat, ok := g.Seat(name)
		if !ok {
			return nil, ErrNotSeated
		}
		m.Player = seat
		next, err := g.Apply(m)
		if err == nil {
			out = next.Clone()
		}
		return next, err
	})
	return out, err
}

func (l *Lobby) update(fn func(*engine.Game) (*engine.Game, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := fn(l.game)
	if err != nil {
		return err
	}
	if next == l.game {
		return nil
	}
	l.game = next
	if l.onChange != nil {
		l.onChange(l.ID, next.Clone())
	}
	return nil
}
