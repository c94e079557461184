package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/giraffe-run/internal/registry"
	"github.com/vovakirdan/giraffe-run/internal/storage"
)

const (
	topRunsLimit    = 100
	recentRunsLimit = 50
	recentPageTitle = "Recent runs"
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// boardKeys are the scoreboard key bindings, shown by the help bar.
type boardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Clear  key.Binding
	Back   key.Binding
	Quit   key.Binding

	allowClear bool
}

func newBoardKeys(allowClear bool) boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next page")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev page")),
		Clear:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear variant")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		allowClear: allowClear,
	}
}

// ShortHelp implements help.KeyMap.
func (k boardKeys) ShortHelp() []key.Binding {
	keys := []key.Binding{k.Scroll, k.Next, k.Prev}
	if k.allowClear {
		keys = append(keys, k.Clear)
	}
	return append(keys, k.Back, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ScoreboardModel shows the session's runs: one page per variant, ranked by
// score, and a last page with the most recent runs of every variant.
type ScoreboardModel struct {
	store    *storage.Store
	variants []registry.GameInfo
	page     int // len(variants) is the recent page

	runs  []storage.RunRecord
	stats *storage.VariantStats
	err   error

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard on the first variant's page.
// allowClear enables deleting a variant's runs, which only makes sense when
// the ledger is not shared with other players.
func NewScoreboardModel(store *storage.Store, width, height int, allowClear bool) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		help:     help.New(),
		keys:     newBoardKeys(allowClear),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.load()
	return m
}

func (m ScoreboardModel) onRecentPage() bool {
	return m.page == len(m.variants)
}

func (m ScoreboardModel) pageTitle() string {
	if m.onRecentPage() {
		return recentPageTitle
	}
	return m.variants[m.page].Title
}

// load queries the ledger for the current page and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.err = nil, nil, nil

	if m.store != nil {
		if m.onRecentPage() {
			m.runs, m.err = m.store.RecentRuns(recentRunsLimit)
		} else {
			id := m.variants[m.page].ID
			m.runs, m.err = m.store.TopRuns(id, topRunsLimit)
			if m.err == nil {
				m.stats, m.err = m.store.Stats(id)
			}
		}
	}

	m.table = m.buildTable()
}

// buildTable lays out the columns for the page and fills the rows.
// Ranked pages lead with the rank, the recent page with the variant.
func (m ScoreboardModel) buildTable() table.Model {
	lead := table.Column{Title: "Rank", Width: 5}
	if m.onRecentPage() {
		lead = table.Column{Title: "Variant", Width: 9}
	}
	columns := []table.Column{
		lead,
		{Title: "Score", Width: 7},
		{Title: "Lvl", Width: 4},
		{Title: "Player", Width: 10},
		{Title: "Time", Width: 9},
	}

	// Spare room goes to the player column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := m.width - 8 - used; extra > 0 {
		columns[3].Width += min(extra, 14)
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		first := "#" + strconv.Itoa(i+1)
		if m.onRecentPage() {
			first = r.Variant
		}
		score := strconv.Itoa(r.Score)
		if r.RecordBeaten {
			score += "*"
		}
		rows[i] = table.Row{first, score, strconv.Itoa(r.Level), r.Session, r.EndedAt.Format("15:04:05")}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(styles),
	)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		pages := len(m.variants) + 1

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Next):
			m.page = (m.page + 1) % pages
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.page = (m.page + pages - 1) % pages
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.keys.allowClear && !m.onRecentPage() && m.store != nil {
				if err := m.store.Clear(m.variants[m.page].ID); err != nil {
					m.err = err
					return m, nil
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(boardTitleStyle.Render("SESSION SCORES - "+m.pageTitle()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerStyled(m.tabs(), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.runs) == 0 {
		body = boardEmptyStyle.Render("No runs this session yet.\nScores are kept until the program exits.")
	}
	b.WriteString(boardFrameStyle.Render(body))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(boardDimStyle.Render("Ledger error: " + m.err.Error()))
		b.WriteString("\n")
	case m.stats != nil && m.stats.Runs > 0:
		b.WriteString(boardDimStyle.Render(fmt.Sprintf("Runs: %d  |  Best: %d  |  Avg: %.1f  |  Ticks run: %d",
			m.stats.Runs, m.stats.Best, m.stats.AvgScore, m.stats.TotalTicks)))
		b.WriteString("\n")
	}
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// tabs renders the page strip, collapsing to the current page when the
// strip is wider than the terminal.
func (m ScoreboardModel) tabs() string {
	names := make([]string, 0, len(m.variants)+1)
	for _, v := range m.variants {
		names = append(names, v.ID)
	}
	names = append(names, "recent")

	tabs := make([]string, len(names))
	for i, name := range names {
		if i == m.page {
			tabs[i] = boardActiveTab.Render(name)
		} else {
			tabs[i] = boardTabStyle.Render(name)
		}
	}

	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", names[m.page])
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
