// internal/game/messages.go
package game

import (
	"fmt"

	engine "github.com/JohnLee1360/JLpebbles-gear-academy/engine"
)

// ActionType names an inbound message.
type ActionType string

const (
	ActionInit    ActionType = "init"
	ActionTurn    ActionType = "turn"
	ActionGiveUp  ActionType = "give_up"
	ActionRestart ActionType = "restart"
	ActionState   ActionType = "state" // Read-only query; never recorded.
)

// Action is one inbound message. Config is read by init and restart; when
// absent the server defaults apply.
type Action struct {
	Type    ActionType     `json:"type"`
	Pebbles uint32         `json:"pebbles,omitempty"`
	Config  *engine.Config `json:"config,omitempty"`
}

// GameEventType names an outbound event.
type GameEventType string

const (
	EventTurn        GameEventType = "turn"         // Echo of the user's accepted move.
	EventCounterTurn GameEventType = "counter_turn" // The program's move.
	EventWon         GameEventType = "won"
	EventInvalidTurn GameEventType = "invalid_turn"
	EventConfigError GameEventType = "config_error" // Init or restart rejected.
	EventError       GameEventType = "error"        // Malformed or out-of-order message.
	EventState       GameEventType = "state"
)

// GameEvent is the JSON envelope sent back to clients.
type GameEvent struct {
	Type    GameEventType `json:"type"`
	Pebbles uint32        `json:"pebbles,omitempty"`
	Winner  engine.Player `json:"winner,omitempty"`
	Message string        `json:"message,omitempty"`
	State   *StateView    `json:"state,omitempty"`
}

func (ev GameEvent) String() string {
	switch ev.Type {
	case EventTurn, EventCounterTurn:
		return fmt.Sprintf("%s(%d)", ev.Type, ev.Pebbles)
	case EventWon:
		return fmt.Sprintf("%s(%s)", ev.Type, ev.Winner)
	}
	return string(ev.Type)
}

func errorEvent(format string, args ...interface{}) GameEvent {
	return GameEvent{Type: EventError, Message: fmt.Sprintf(format, args...)}
}
