package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/grid-quest/internal/core"
)

// PlayKeyMap defines the key bindings for a play session.
type PlayKeyMap struct {
	MoveUp     key.Binding
	MoveDown   key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	JumpUp     key.Binding
	JumpDown   key.Binding
	JumpLeft   key.Binding
	JumpRight  key.Binding
	Appearance key.Binding
	Next       key.Binding
	Prev       key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveRight, k.JumpRight, k.Appearance, k.Next, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.MoveUp, k.MoveDown, k.MoveLeft, k.MoveRight},
		{k.JumpUp, k.JumpDown, k.JumpLeft, k.JumpRight},
		{k.Appearance, k.Next, k.Prev, k.Restart},
		{k.Back, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		MoveUp: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "move down"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "move left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "move"),
		),
		JumpUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("S-↑/K", "jump up"),
		),
		JumpDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("S-↓/J", "jump down"),
		),
		JumpLeft: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("S-←/H", "jump left"),
		),
		JumpRight: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("S-arrow/HJKL", "jump"),
		),
		Appearance: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "appearance"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n/p", "scenario"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "shift+tab"),
			key.WithHelp("p", "prev scenario"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a play action.
func (k PlayKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.JumpUp):
		return core.ActionJumpUp
	case key.Matches(msg, k.JumpDown):
		return core.ActionJumpDown
	case key.Matches(msg, k.JumpLeft):
		return core.ActionJumpLeft
	case key.Matches(msg, k.JumpRight):
		return core.ActionJumpRight
	case key.Matches(msg, k.MoveUp):
		return core.ActionMoveUp
	case key.Matches(msg, k.MoveDown):
		return core.ActionMoveDown
	case key.Matches(msg, k.MoveLeft):
		return core.ActionMoveLeft
	case key.Matches(msg, k.MoveRight):
		return core.ActionMoveRight
	case key.Matches(msg, k.Appearance):
		return core.ActionNextAppearance
	case key.Matches(msg, k.Next):
		return core.ActionNextScenario
	case key.Matches(msg, k.Prev):
		return core.ActionPrevScenario
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionResults
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionResults
	}
	return MenuActionNone
}
