package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/giraffe-run/internal/core"
)

// GameKeys are the in-game bindings.
//
// Terminals report key presses only, so the early jump release that a
// window gets from a key-up event has its own binding here.
type GameKeys struct {
	Jump    key.Binding
	Release key.Binding
	Confirm key.Binding
	Back    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp implements help.KeyMap.
func (k GameKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Release, k.Pause, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k GameKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Back, k.Confirm}}
}

// MenuKeys are the variant picker bindings.
type MenuKeys struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// ShortHelp implements help.KeyMap.
func (k MenuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	Game GameKeys
	Menu MenuKeys
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		Game: GameKeys{
			Jump:    key.NewBinding(key.WithKeys(" ", "w", "up"), key.WithHelp("space", "jump")),
			Release: key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("↓", "short hop")),
			Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
			Back:    key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "pause/menu")),
			Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
			Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
			Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		},
		Menu: MenuKeys{
			Up:         key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/k", "up")),
			Down:       key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/j", "down")),
			Select:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
			Back:       key.NewBinding(key.WithKeys("b", "esc")),
			Scoreboard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
			Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.Game
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Jump):
		return core.ActionJump, false
	case key.Matches(msg, k.Release):
		return core.ActionRelease, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := km.Menu
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Back):
		return MenuActionBack
	case key.Matches(msg, k.Scoreboard):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
