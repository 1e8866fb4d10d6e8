package engine

import (
	"encoding/json"
	"testing"
)

func TestDifficultyText(t *testing.T) {
	for _, d := range []DifficultyLevel{Easy, Hard} {
		text, err := d.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", d, err)
		}
		var back DifficultyLevel
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != d {
			t.Errorf("round trip %s -> %s", d, back)
		}
	}

	if _, err := DifficultyLevel(9).MarshalText(); err == nil {
		t.Error("MarshalText accepted an unknown level")
	}
	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("ParseDifficulty accepted an unknown name")
	}
	if d, err := ParseDifficulty(""); err != nil || d != Easy {
		t.Errorf("ParseDifficulty(\"\") = %s, %v; want easy", d, err)
	}
}

func TestPlayerText(t *testing.T) {
	tests := []struct {
		p    Player
		text string
	}{
		{NoPlayer, ""},
		{User, "user"},
		{Program, "program"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.text {
			t.Errorf("String(%d) = %q, want %q", tt.p, got, tt.text)
		}
		var back Player
		if err := back.UnmarshalText([]byte(tt.text)); err != nil || back != tt.p {
			t.Errorf("UnmarshalText(%q) = %d, %v", tt.text, back, err)
		}
	}
	var p Player
	if err := p.UnmarshalText([]byte("spectator")); err == nil {
		t.Error("UnmarshalText accepted an unknown player")
	}
}

func TestPlayerOpponent(t *testing.T) {
	if User.Opponent() != Program || Program.Opponent() != User || NoPlayer.Opponent() != NoPlayer {
		t.Error("Opponent mapping is wrong")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{TurnEvent(3), "turn(3)"},
		{CounterTurnEvent(2), "counter_turn(2)"},
		{WonEvent(User), "won(user)"},
		{WonEvent(Program), "won(program)"},
		{InvalidTurnEvent(), "invalid_turn"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestGameStateJSON(t *testing.T) {
	g := GameState{
		PebblesCount:      20,
		MaxPebblesPerTurn: 5,
		PebblesRemaining:  0,
		Difficulty:        Hard,
		FirstPlayer:       Program,
		Winner:            User,
	}
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if fields["difficulty"] != "hard" || fields["winner"] != "user" || fields["first_player"] != "program" {
		t.Errorf("unexpected JSON %s", data)
	}

	inProgress, _ := json.Marshal(GameState{PebblesCount: 1, MaxPebblesPerTurn: 1, PebblesRemaining: 1})
	var progressFields map[string]any
	if err := json.Unmarshal(inProgress, &progressFields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := progressFields["winner"]; ok {
		t.Errorf("in-progress state serialized a winner: %s", inProgress)
	}
}
