package engine

// Turn applies the user's removal of n pebbles and, unless that empties the
// pile, the opponent's reply. An illegal move returns a single
// EventInvalidTurn and leaves the state unchanged.
func (g *GameState) Turn(n uint32, rng RandomSource) []Event {
	if err := g.ValidateTurn(n); err != nil {
		return []Event{InvalidTurnEvent()}
	}

	g.take(User, n)
	events := []Event{TurnEvent(n)}
	if g.PebblesRemaining == 0 {
		g.Winner = User
		return append(events, WonEvent(User))
	}

	return append(events, g.counterTurn(rng)...)
}

// GiveUp concedes the game to the program without touching the pile.
// Giving up a finished game is rejected like any other illegal action.
func (g *GameState) GiveUp() []Event {
	if g.IsTerminal() {
		return []Event{InvalidTurnEvent()}
	}
	g.Winner = Program
	return []Event{WonEvent(Program)}
}

// counterTurn executes one opponent move. It reports CounterTurn(m), or
// Won(Program) instead when m empties the pile.
func (g *GameState) counterTurn(rng RandomSource) []Event {
	m := ChooseMove(g, rng)
	g.take(Program, m)
	if g.PebblesRemaining == 0 {
		g.Winner = Program
		return []Event{WonEvent(Program)}
	}
	return []Event{CounterTurnEvent(m)}
}

// take removes n pebbles on behalf of p. Callers guarantee n is legal.
func (g *GameState) take(p Player, n uint32) {
	g.PebblesRemaining -= n
	g.TurnNumber++
	g.LastMove = Move{Player: p, Pebbles: n}
}
