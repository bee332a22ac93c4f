package engine_test

import (
	"testing"

	"github.com/WesleyAC/hanabi/internal/engine"
)

func TestHistoryIsAppendOnly(t *testing.T) {
	g := riggedGame(t, nil,
		[]engine.Card{red1, red3, green2},
		[]engine.Card{blue1, white3},
		[]engine.Card{yellow4, white1, green1},
	)

	g1 := mustApply(t, g, engine.Play(0, red1.ID))
	g2 := mustApply(t, g1, engine.Hint(1, 0, engine.ColorFact(engine.Red)))
	g3 := mustApply(t, g2, engine.Play(0, red3.ID))

	if len(g.Moves) != 0 || len(g1.Moves) != 1 || len(g2.Moves) != 2 {
		t.Fatal("earlier snapshots should keep their own logs")
	}
	if len(g3.Moves) != 3 {
		t.Fatalf("expected 3 records, got %d", len(g3.Moves))
	}
	for i, r := range g3.Moves {
		if r.Seq != i {
			t.Errorf("record %d has seq %d", i, r.Seq)
		}
	}
	if g3.Moves[0].Outcome != engine.OutcomeSuccess || g3.Moves[2].Outcome != engine.OutcomeFailure {
		t.Errorf("unexpected outcomes %q, %q", g3.Moves[0].Outcome, g3.Moves[2].Outcome)
	}
	if g3.Moves[1].Hint.Matched != 1 {
		t.Errorf("expected one red card hinted, got %d", g3.Moves[1].Hint.Matched)
	}
	if last, ok := g3.Moves.Last(); !ok || last.Seq != 2 || last.Player != 0 {
		t.Errorf("unexpected last record %+v", last)
	}
	// The log of an accepted state is not shared with its successor.
	g3.Moves[0].Card.Number = 4
	if g1.Moves[0].Card.Number != 1 {
		t.Fatal("records are shared between snapshots")
	}
}

func TestDescribe(t *testing.T) {
	names := []string{"alice", "bob"}
	tests := []struct {
		rec  engine.MoveRecord
		want string
	}{
		{engine.MoveRecord{Player: 0, Type: engine.MovePlay, Card: &red1, Outcome: engine.OutcomeSuccess}, "alice played Red 1"},
		{engine.MoveRecord{Player: 1, Type: engine.MovePlay, Card: &red3, Outcome: engine.OutcomeFailure}, "bob misplayed Red 3"},
		{engine.MoveRecord{Player: 0, Type: engine.MoveDiscard, Card: &green2}, "alice discarded Green 2"},
		{engine.MoveRecord{Player: 1, Type: engine.MoveHint, Hint: &engine.HintRecord{Target: 0, Fact: engine.NumberFact(3), Matched: 2}}, "bob hinted alice 3 (2 cards)"},
		{engine.MoveRecord{Player: 2, Type: engine.MoveHint, Hint: &engine.HintRecord{Target: 1, Fact: engine.ColorFact(engine.Blue), Matched: 1}}, "player 3 hinted bob Blue (1 cards)"},
	}
	for _, tt := range tests {
		if got := tt.rec.Describe(names); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
