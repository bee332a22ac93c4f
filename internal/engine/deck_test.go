package engine_test

import (
	"math/rand/v2"
	"testing"

	"github.com/WesleyAC/hanabi/internal/engine"
	"github.com/google/uuid"
)

func TestNewDeckComposition(t *testing.T) {
	d := engine.NewDeck(rand.New(rand.NewPCG(1, 2)), uuid.New)
	if d.Len() != engine.DeckSize {
		t.Fatalf("expected %d cards, got %d", engine.DeckSize, d.Len())
	}

	want := map[int]int{1: 3, 2: 2, 3: 2, 4: 2, 5: 1}
	counts := map[engine.Color]map[int]int{}
	ids := map[uuid.UUID]bool{}
	for _, c := range d {
		if counts[c.Color] == nil {
			counts[c.Color] = map[int]int{}
		}
		counts[c.Color][c.Number]++
		if ids[c.ID] {
			t.Fatalf("duplicate card id %s", c.ID)
		}
		ids[c.ID] = true
	}
	if len(counts) != 5 {
		t.Fatalf("expected 5 colors, got %d", len(counts))
	}
	for color, numbers := range counts {
		for n, w := range want {
			if numbers[n] != w {
				t.Errorf("%s %d: got %d copies, want %d", color, n, numbers[n], w)
			}
		}
	}
}

func TestDeckDrawTakesTop(t *testing.T) {
	d := engine.NewDeck(rand.New(rand.NewPCG(3, 4)), uuid.New)
	top, ok := d.Peek()
	if !ok {
		t.Fatal("expected a top card")
	}
	got, ok := d.Draw()
	if !ok || got != top {
		t.Fatalf("expected to draw %v, got %v", top, got)
	}
	if d.Len() != engine.DeckSize-1 {
		t.Fatalf("expected %d cards left, got %d", engine.DeckSize-1, d.Len())
	}

	var empty engine.Deck
	if _, ok := empty.Draw(); ok {
		t.Fatal("drawing from an empty deck should fail")
	}
}

func TestShuffleChangesOrder(t *testing.T) {
	a := engine.NewDeck(rand.New(rand.NewPCG(1, 1)), seqIDs())
	b := engine.NewDeck(rand.New(rand.NewPCG(2, 2)), seqIDs())
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced the same order")
	}
}
