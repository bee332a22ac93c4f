package engine

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	MaxHints   = 8
	MaxFuses   = 3
	MaxNumber  = 5
	MinPlayers = 2
	MaxPlayers = 5
	DeckSize   = 50
)

// copiesPerNumber is how many cards of each number exist per color.
var copiesPerNumber = map[int]int{1: 3, 2: 2, 3: 2, 4: 2, 5: 1}

// HandSize returns how many cards each player is dealt.
func HandSize(numPlayers int) int {
	if numPlayers <= 3 {
		return 5
	}
	return 4
}

// Shuffler permutes n elements in place through swap.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// GameConfig holds the collaborators used while building a new game.
type GameConfig struct {
	Shuffler Shuffler
	NewID    func() uuid.UUID
}

func DefaultConfig() GameConfig {
	return GameConfig{
		Shuffler: globalShuffler{},
		NewID:    uuid.New,
	}
}

// Option adjusts a GameConfig.
type Option func(*GameConfig)

// WithShuffler replaces the random source used to order the deck.
// *rand.Rand satisfies Shuffler.
func WithShuffler(s Shuffler) Option {
	return func(c *GameConfig) { c.Shuffler = s }
}

// WithIDSource replaces the card identity generator.
func WithIDSource(f func() uuid.UUID) Option {
	return func(c *GameConfig) { c.NewID = f }
}
