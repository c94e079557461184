package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/registry"
	"github.com/vovakirdan/giraffe-run/internal/storage"
)

var (
	menuTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuCursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuTaglineStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	menuDimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem represents a selectable variant in the menu.
type MenuItem struct {
	GameID  string
	Title   string
	Tagline string
	Best    int // Best ledger score, 0 when none
}

// MenuModel is the Bubble Tea model for the variant picker. It only records
// what the user chose; the session acts on it.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	help      help.Model

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists the registered variants with their best ledger score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, len(games))

	for i, g := range games {
		items[i] = MenuItem{
			GameID:  g.ID,
			Title:   g.Title,
			Tagline: config.Variant(g.ID).Tagline(),
		}
		if store == nil {
			continue
		}
		if best, err := store.BestScore(g.ID); err == nil {
			items[i].Best = best
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)

	case MenuActionDown:
		if len(m.items) > 0 {
			m.cursor = min(m.cursor+1, len(m.items)-1)
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			m.selected = &item
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(menuTitleStyle.Render("  G I R A F F E   R U N  "), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		best := "     -"
		if item.Best > 0 {
			best = fmt.Sprintf("%6d", item.Best)
		}
		line := fmt.Sprintf("%-24s best %s", item.Title, best)

		if i == m.cursor {
			b.WriteString(centerStyled(menuCursorStyle.Render("> "+line), m.width))
		} else {
			b.WriteString(centerStyled("  "+line, m.width))
		}
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerStyled(menuTaglineStyle.Render(m.items[m.cursor].Tagline), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(menuDimStyle.Render(m.help.View(m.keyMapper.Menu)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerStyled centers text by its visible width, so styled strings with
// escape codes line up with plain ones.
func centerStyled(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
