package engine

import "encoding/json"

// GamePhase is whether moves may still be applied, and if not, why.
type GamePhase int

const (
	PhaseInProgress    GamePhase = iota // moves accepted
	PhaseOutOfFuses                     // every fuse spent
	PhaseDeckExhausted                  // deck empty and final turns used
)

var phaseNames = map[GamePhase]string{
	PhaseInProgress:    "in_progress",
	PhaseOutOfFuses:    "out_of_fuses",
	PhaseDeckExhausted: "deck_exhausted",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

func (p GamePhase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Terminal reports whether no further moves can be applied.
func (p GamePhase) Terminal() bool {
	return p != PhaseInProgress
}
