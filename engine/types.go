package engine

import "fmt"

// DifficultyLevel selects the opponent's move policy. The zero value is Easy.
type DifficultyLevel uint8

const (
	Easy DifficultyLevel = iota // 0: uniform random legal move
	Hard                        // 1: optimal subtraction-game play
)

// String returns the wire name of the difficulty.
func (d DifficultyLevel) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", uint8(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d DifficultyLevel) MarshalText() ([]byte, error) {
	switch d {
	case Easy, Hard:
		return []byte(d.String()), nil
	}
	return nil, fmt.Errorf("unknown difficulty %d", uint8(d))
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value decodes
// to the default, Easy.
func (d *DifficultyLevel) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDifficulty converts a wire name into a DifficultyLevel.
func ParseDifficulty(s string) (DifficultyLevel, error) {
	switch s {
	case "", "easy", "Easy":
		return Easy, nil
	case "hard", "Hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}

// Player identifies a turn owner or winner.
type Player uint8

const (
	NoPlayer Player = iota // 0: no winner yet
	User                   // 1
	Program                // 2
)

// String returns the wire name of the player.
func (p Player) String() string {
	switch p {
	case NoPlayer:
		return ""
	case User:
		return "user"
	case Program:
		return "program"
	}
	return fmt.Sprintf("player(%d)", uint8(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Player) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*p = NoPlayer
	case "user":
		*p = User
	case "program":
		*p = Program
	default:
		return fmt.Errorf("unknown player %q", text)
	}
	return nil
}

// Opponent returns the other side. NoPlayer has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case User:
		return Program
	case Program:
		return User
	}
	return NoPlayer
}

// EventType describes what an emitted Event reports.
type EventType uint8

const (
	EventTurn        EventType = iota // 0: echo of the user's accepted move
	EventCounterTurn                  // 1: opponent removed Pebbles
	EventWon                          // 2: Player took the last pebble or the user gave up
	EventInvalidTurn                  // 3: action rejected, state unchanged
)

// String returns a readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventTurn:
		return "turn"
	case EventCounterTurn:
		return "counter_turn"
	case EventWon:
		return "won"
	case EventInvalidTurn:
		return "invalid_turn"
	}
	return fmt.Sprintf("event(%d)", uint8(t))
}

// Event is one observable outcome of a message. A single message may emit
// several events in order.
type Event struct {
	Type    EventType
	Pebbles uint32 // EventTurn, EventCounterTurn
	Player  Player // EventWon
}

// TurnEvent echoes an accepted user move.
func TurnEvent(n uint32) Event { return Event{Type: EventTurn, Pebbles: n} }

// CounterTurnEvent reports the opponent's move.
func CounterTurnEvent(m uint32) Event { return Event{Type: EventCounterTurn, Pebbles: m} }

// WonEvent reports the winner.
func WonEvent(p Player) Event { return Event{Type: EventWon, Player: p} }

// InvalidTurnEvent reports a rejected action.
func InvalidTurnEvent() Event { return Event{Type: EventInvalidTurn} }

func (e Event) String() string {
	switch e.Type {
	case EventTurn, EventCounterTurn:
		return fmt.Sprintf("%s(%d)", e.Type, e.Pebbles)
	case EventWon:
		return fmt.Sprintf("%s(%s)", e.Type, e.Player)
	}
	return e.Type.String()
}
