package engine

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Color is one of the five firework colors.
type Color int

const (
	Red Color = iota
	Green
	Blue
	White
	Yellow

	noColor Color = -1
)

var colorNames = map[Color]string{
	Red:    "Red",
	Green:  "Green",
	Blue:   "Blue",
	White:  "White",
	Yellow: "Yellow",
}

// AllColors returns the five colors in deck-building order.
func AllColors() []Color {
	return []Color{Red, Green, Blue, White, Yellow}
}

func (c Color) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return "Unknown"
}

// Valid reports whether c is one of the five colors.
func (c Color) Valid() bool {
	_, ok := colorNames[c]
	return ok
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid color %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	for k, v := range colorNames {
		if v == string(b) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown color %q", string(b))
}

// Card is a single card. Two cards with the same color and number are still
// distinct; hands and the hint ledger key on ID.
type Card struct {
	ID     uuid.UUID `json:"id"`
	Color  Color     `json:"color"`
	Number int       `json:"number"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s %d", c.Color, c.Number)
}

// FactKind says which attribute a hint reveals.
type FactKind string

const (
	FactColor  FactKind = "color"
	FactNumber FactKind = "number"
)

// Fact is one piece of information revealed by a hint.
type Fact struct {
	Kind   FactKind
	Color  Color
	Number int
}

type factJSON struct {
	Kind   FactKind `json:"kind"`
	Color  *Color   `json:"color,omitempty"`
	Number int      `json:"number,omitempty"`
}

// MarshalJSON writes only the attribute named by Kind.
func (f Fact) MarshalJSON() ([]byte, error) {
	out := factJSON{Kind: f.Kind}
	switch f.Kind {
	case FactColor:
		c := f.Color
		out.Color = &c
	case FactNumber:
		out.Number = f.Number
	}
	return json.Marshal(out)
}

func (f *Fact) UnmarshalJSON(b []byte) error {
	var in factJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*f = Fact{Kind: in.Kind, Number: in.Number}
	switch {
	case in.Color != nil:
		f.Color = *in.Color
	case in.Kind == FactColor:
		// No color named; leave the fact invalid rather than default to Red.
		f.Color = noColor
	}
	return nil
}

func ColorFact(c Color) Fact { return Fact{Kind: FactColor, Color: c} }
func NumberFact(n int) Fact { return Fact{Kind: FactNumber, Number: n} }

// Valid reports whether the fact names a real color or a number in 1..5.
func (f Fact) Valid() bool {
	switch f.Kind {
	case FactColor:
		return f.Color.Valid()
	case FactNumber:
		return f.Number >= 1 && f.Number <= MaxNumber
	default:
		return false
	}
}

// Matches reports whether the fact is true of card c.
func (f Fact) Matches(c Card) bool {
	switch f.Kind {
	case FactColor:
		return c.Color == f.Color
	case FactNumber:
		return c.Number == f.Number
	default:
		return false
	}
}

func (f Fact) String() string {
	if f.Kind == FactColor {
		return f.Color.String()
	}
	return fmt.Sprintf("%d", f.Number)
}
