package core

import "testing"

func TestActionBlockID(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionMoveRight, "moveRight"},
		{ActionMoveLeft, "moveLeft"},
		{ActionMoveUp, "moveUp"},
		{ActionMoveDown, "moveDown"},
		{ActionJumpRight, "jumpRight"},
		{ActionJumpLeft, "jumpLeft"},
		{ActionJumpUp, "jumpUp"},
		{ActionJumpDown, "jumpDown"},
		{ActionRestart, ""},
		{ActionQuit, ""},
		{ActionNone, ""},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			if got := tc.action.BlockID(); got != tc.want {
				t.Errorf("BlockID() = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestActionStringUnknown(t *testing.T) {
	if Action(999).String() != "Unknown" {
		t.Error("Out-of-range action should stringify as Unknown")
	}
}
