package engine

// Apply is the single entry point for turns. It validates m against g and
// returns the resulting state. g is never modified; on rejection the
// returned game is nil and err is a *RejectionError.
func (g *Game) Apply(m Move) (*Game, error) {
	if g.Over() {
		return nil, ErrGameOver
	}
	if m.Player < 0 || m.Player >= len(g.Players) {
		return nil, ErrInvalidPlayer
	}
	if m.Player != g.Turn {
		return nil, ErrNotYourTurn
	}

	next := g.Clone()
	var (
		rec MoveRecord
		err error
	)
	switch m.Type {
	case MovePlay:
		rec, err = next.applyPlay(m)
	case MoveHint:
		rec, err = next.applyHint(m)
	case MoveDiscard:
		rec, err = next.applyDiscard(m)
	default:
		err = ErrInvalidMove
	}
	if err != nil {
		return nil, err
	}

	next.endTurn(rec)
	return next, nil
}

func (g *Game) applyPlay(m Move) (MoveRecord, error) {
	hand := &g.Players[m.Player]
	card, found := hand.Remove(m.Card)
	if !found {
		return MoveRecord{}, ErrCardNotInHand
	}

	rec := MoveRecord{Player: m.Player, Type: MovePlay, Card: &card}
	if card.Number == g.Played[card.Color]+1 {
		g.Played[card.Color] = card.Number
		if card.Number == MaxNumber {
			g.Hints = min(g.Hints+1, MaxHints)
		}
		rec.Outcome = OutcomeSuccess
	} else {
		g.Discard = append(g.Discard, card)
		g.Fuses--
		rec.Outcome = OutcomeFailure
	}

	g.drawInto(hand)
	return rec, nil
}

func (g *Game) applyHint(m Move) (MoveRecord, error) {
	if g.Hints == 0 {
		return MoveRecord{}, ErrNoHints
	}
	if m.Target == m.Player {
		return MoveRecord{}, ErrSelfHint
	}
	if m.Target < 0 || m.Target >= len(g.Players) {
		return MoveRecord{}, ErrInvalidTarget
	}
	if m.Fact == nil || !m.Fact.Valid() {
		return MoveRecord{}, ErrInvalidFact
	}

	matched := g.Players[m.Target].Matching(*m.Fact)
	if len(matched) == 0 {
		return MoveRecord{}, ErrNoMatchingCards
	}

	hint := &HintRecord{Target: m.Target, Fact: *m.Fact, Matched: len(matched)}
	for _, c := range matched {
		g.GivenHints[c.ID] = append(g.GivenHints[c.ID], *m.Fact)
		hint.Cards = append(hint.Cards, c.ID)
	}
	g.Hints = max(g.Hints-1, 0)

	return MoveRecord{Player: m.Player, Type: MoveHint, Hint: hint}, nil
}

func (g *Game) applyDiscard(m Move) (MoveRecord, error) {
	hand := &g.Players[m.Player]
	card, found := hand.Remove(m.Card)
	if !found {
		return MoveRecord{}, ErrCardNotInHand
	}
	g.Discard = append(g.Discard, card)
	g.drawInto(hand)
	g.Hints = min(g.Hints+1, MaxHints)

	return MoveRecord{Player: m.Player, Type: MoveDiscard, Card: &card}, nil
}

// drawInto gives the hand a replacement card if the deck has one.
func (g *Game) drawInto(hand *Hand) {
	if card, ok := g.Deck.Draw(); ok {
		hand.Add(card)
	}
}

// endTurn advances the turn pointer, runs the endgame countdown once the deck
// is empty, and records the move.
func (g *Game) endTurn(rec MoveRecord) {
	g.Turn = (g.Turn + 1) % len(g.Players)
	if g.Deck.Len() == 0 && g.EndgameTurns > 0 {
		g.EndgameTurns--
	}
	g.Moves.record(rec)
}
