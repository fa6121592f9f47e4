package core

// Action represents a semantic block action, abstracted from physical key presses.
// The platform maps keys to actions; the session maps actions to blocks.
type Action int

const (
	ActionNone Action = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionJumpUp
	ActionJumpDown
	ActionJumpLeft
	ActionJumpRight
	ActionNextAppearance // Cycle through the image catalog
	ActionNextScenario
	ActionPrevScenario
	ActionRestart // Reload the current scenario after game over
	ActionBack    // Return to the scenario picker
	ActionQuit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionJumpUp:
		return "JumpUp"
	case ActionJumpDown:
		return "JumpDown"
	case ActionJumpLeft:
		return "JumpLeft"
	case ActionJumpRight:
		return "JumpRight"
	case ActionNextAppearance:
		return "NextAppearance"
	case ActionNextScenario:
		return "NextScenario"
	case ActionPrevScenario:
		return "PrevScenario"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// BlockID returns the block identifier an action triggers, or "" for
// actions that are handled by the platform itself.
func (a Action) BlockID() string {
	switch a {
	case ActionMoveUp:
		return "moveUp"
	case ActionMoveDown:
		return "moveDown"
	case ActionMoveLeft:
		return "moveLeft"
	case ActionMoveRight:
		return "moveRight"
	case ActionJumpUp:
		return "jumpUp"
	case ActionJumpDown:
		return "jumpDown"
	case ActionJumpLeft:
		return "jumpLeft"
	case ActionJumpRight:
		return "jumpRight"
	default:
		return ""
	}
}
