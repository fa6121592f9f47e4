package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/grid-quest/internal/core"
	"github.com/vovakirdan/grid-quest/internal/storage"
)

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionResults},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestPlayKeyMapAction(t *testing.T) {
	keys := DefaultPlayKeyMap()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight},
		{runes("a"), core.ActionMoveLeft},
		{tea.KeyMsg{Type: tea.KeyShiftUp}, core.ActionJumpUp},
		{runes("J"), core.ActionJumpDown},
		{runes("i"), core.ActionNextAppearance},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextScenario},
		{runes("r"), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("z"), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.expected {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestMenuNavigationAndSelect(t *testing.T) {
	lib := testLibrary(t)
	m := NewMenuModel(lib, nil, core.DefaultConfig())

	if len(m.items) != lib.Len() {
		t.Fatalf("got %d items, expected %d", len(m.items), lib.Len())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected to stay at 0", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if cmd == nil {
		t.Error("select should end the menu program")
	}
	if m.Selected() == nil || m.Selected().ScenarioID != lib.At(1).ID {
		t.Errorf("selected = %+v, expected %s", m.Selected(), lib.At(1).ID)
	}
}

func TestMenuShowsRecord(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, moves := range []int{9, 7} {
		if _, err := store.SaveRun(ctx, storage.Run{ScenarioID: "level1", Outcome: "won", Moves: moves}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewMenuModel(testLibrary(t), store, core.DefaultConfig())
	if m.items[0].Record != "best 7 moves" {
		t.Errorf("record = %q, expected best 7 moves", m.items[0].Record)
	}
	if !strings.Contains(m.View(), "best 7 moves") {
		t.Error("view should show the record")
	}
}

func TestResultsModel(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	runs := []storage.Run{
		{ScenarioID: "level2", Outcome: "lost", Moves: 3, Source: storage.SourcePlay},
		{ScenarioID: "level2", Outcome: "won", Moves: 4, Source: storage.SourceProgram},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	lib := testLibrary(t)
	m := NewResultsModel(lib, store, "level2", 100, 30)
	if len(m.runs) != 2 {
		t.Fatalf("got %d runs, expected 2", len(m.runs))
	}
	if got := m.statsLine(); got != "2 runs  1 won  1 lost  best 4 moves" {
		t.Errorf("statsLine() = %q", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ResultsModel)
	if m.scenarios[m.cursor].ID == "level2" {
		t.Error("tab should move to the next scenario")
	}
	if len(m.runs) != 0 {
		t.Errorf("got %d runs for %s, expected 0", len(m.runs), m.scenarios[m.cursor].ID)
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("view should show the empty message")
	}

	next, cmd := m.Update(runes("b"))
	m = next.(ResultsModel)
	if !m.IsGoingBack() || cmd == nil {
		t.Error("b should go back")
	}
}

func TestResultsWithoutStore(t *testing.T) {
	m := NewResultsModel(testLibrary(t), nil, "level1", 60, 20)
	if m.showSidebar {
		t.Error("narrow screens should hide the sidebar")
	}
	if m.statsLine() != "no runs yet" {
		t.Errorf("statsLine() = %q", m.statsLine())
	}
}
