// Package engine implements the pebbles game rules.
//
// The package is a flat, dependency-free turn engine: a GameState value owns
// the pile, every message (init, turn, give up, restart) is a synchronous
// method call, and randomness is always supplied by the caller through a
// RandomSource. The service module hosts it behind a message boundary.
package engine

// GameState holds the complete, self-contained state of one pebbles game.
// It is a plain value type; copying it is a full snapshot.
type GameState struct {
	PebblesCount      uint32          `json:"pebbles_count"`
	MaxPebblesPerTurn uint32          `json:"max_pebbles_per_turn"`
	PebblesRemaining  uint32          `json:"pebbles_remaining"`
	Difficulty        DifficultyLevel `json:"difficulty"`
	FirstPlayer       Player          `json:"first_player"`
	Winner            Player          `json:"winner,omitempty"` // NoPlayer while in progress.
	TurnNumber        uint32          `json:"turn_number"`
	LastMove          Move            `json:"last_move"`
}

// Move records a single removal from the pile.
type Move struct {
	Player  Player `json:"player"`
	Pebbles uint32 `json:"pebbles"`
}

// NewGame validates cfg and starts a game. The first player is drawn from
// rng; when the program moves first its move is applied before returning
// and reported in the returned events.
func NewGame(cfg Config, rng RandomSource) (GameState, []Event, error) {
	var g GameState
	events, err := g.Restart(cfg, rng)
	if err != nil {
		return GameState{}, nil, err
	}
	return g, events, nil
}

// Restart replaces the state wholesale with a fresh game built from cfg.
// On a config error the current state is left untouched.
func (g *GameState) Restart(cfg Config, rng RandomSource) ([]Event, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	*g = GameState{
		PebblesCount:      cfg.PebblesCount,
		MaxPebblesPerTurn: cfg.MaxPebblesPerTurn,
		PebblesRemaining:  cfg.PebblesCount,
		Difficulty:        cfg.Difficulty,
		FirstPlayer:       pickFirstPlayer(rng),
	}

	if g.FirstPlayer == Program {
		return g.counterTurn(rng), nil
	}
	return nil, nil
}

// pickFirstPlayer chooses User or Program with equal probability.
func pickFirstPlayer(rng RandomSource) Player {
	if rng.Uint32N(2) == 0 {
		return User
	}
	return Program
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsTerminal returns true once a winner has been decided.
func (g *GameState) IsTerminal() bool { return g.Winner != NoPlayer }

// Config returns the parameters the current game was started with.
func (g *GameState) Config() Config {
	return Config{
		Difficulty:        g.Difficulty,
		PebblesCount:      g.PebblesCount,
		MaxPebblesPerTurn: g.MaxPebblesPerTurn,
	}
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of GameState.
type Snapshot GameState

// Save returns a snapshot of the current game state.
func (g *GameState) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *GameState) Restore(s Snapshot) { *g = GameState(s) }
