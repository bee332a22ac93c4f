package engine

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Outcome is the result of a play.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// HintRecord describes what a hint revealed.
type HintRecord struct {
	Target  int         `json:"target"`
	Fact    Fact        `json:"fact"`
	Matched int         `json:"matched"`
	Cards   []uuid.UUID `json:"cards"`
}

// MoveRecord is one accepted move together with what it resolved to.
type MoveRecord struct {
	Seq     int         `json:"seq"`
	Player  int         `json:"player"`
	Type    MoveType    `json:"type"`
	Card    *Card       `json:"card,omitempty"`    // played or discarded card
	Outcome Outcome     `json:"outcome,omitempty"` // plays only
	Hint    *HintRecord `json:"hint,omitempty"`
}

// History is the append-only log of accepted moves.
type History []MoveRecord

func (h *History) record(r MoveRecord) {
	r.Seq = len(*h)
	*h = append(*h, r)
}

// Last returns the most recent record.
func (h History) Last() (MoveRecord, bool) {
	if len(h) == 0 {
		return MoveRecord{}, false
	}
	return h[len(h)-1], true
}

func (h History) clone() History {
	c := make(History, len(h))
	for i, r := range h {
		if r.Card != nil {
			card := *r.Card
			r.Card = &card
		}
		if r.Hint != nil {
			hint := *r.Hint
			hint.Cards = slices.Clone(hint.Cards)
			r.Hint = &hint
		}
		c[i] = r
	}
	return c
}

// Describe renders the record as one line of game commentary. names maps
// seats to display names; missing names fall back to "player N".
func (r MoveRecord) Describe(names []string) string {
	who := seatName(names, r.Player)
	switch r.Type {
	case MovePlay:
		if r.Card == nil {
			return who + " played"
		}
		if r.Outcome == OutcomeFailure {
			return fmt.Sprintf("%s misplayed %s", who, r.Card)
		}
		return fmt.Sprintf("%s played %s", who, r.Card)
	case MoveDiscard:
		if r.Card == nil {
			return who + " discarded"
		}
		return fmt.Sprintf("%s discarded %s", who, r.Card)
	case MoveHint:
		if r.Hint == nil {
			return who + " hinted"
		}
		return fmt.Sprintf("%s hinted %s %s (%d cards)", who, seatName(names, r.Hint.Target), r.Hint.Fact, r.Hint.Matched)
	default:
		return who + " moved"
	}
}

func seatName(names []string, seat int) string {
	if seat >= 0 && seat < len(names) && names[seat] != "" {
		return names[seat]
	}
	return fmt.Sprintf("player %d", seat+1)
}
