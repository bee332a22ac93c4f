package engine

import "github.com/google/uuid"

// MoveType identifies the three kinds of turn.
type MoveType string

const (
	MovePlay    MoveType = "play"
	MoveHint    MoveType = "hint"
	MoveDiscard MoveType = "discard"
)

// Move is a proposed turn sent to Game.Apply.
type Move struct {
	Player int      `json:"player"`
	Type   MoveType `json:"type"`
	// Params depend on Type:
	// play, discard: Card
	// hint: Target, Fact
	Card   uuid.UUID `json:"card"`
	Target int       `json:"target"`
	Fact   *Fact     `json:"fact,omitempty"`
}

func Play(player int, card uuid.UUID) Move {
	return Move{Player: player, Type: MovePlay, Card: card}
}

func Discard(player int, card uuid.UUID) Move {
	return Move{Player: player, Type: MoveDiscard, Card: card}
}

func Hint(player, target int, fact Fact) Move {
	return Move{Player: player, Type: MoveHint, Target: target, Fact: &fact}
}
