package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chorpolice/internal/registry"
	"github.com/vovakirdan/chorpolice/internal/storage"
)

const (
	maxScores       = 100 // Runs loaded per variant
	statsCardWidth  = 24
	minWidthForCard = 80 // Narrower terminals drop the stats card
)

var (
	boardTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardEscapeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	boardTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	boardActiveTab   = boardTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// boardKeys are the scoreboard bindings. They double as the help model.
type boardKeys struct {
	Scroll key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Switch, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab/←/→", "mode")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists stored runs of one variant at a time, best first,
// beside a card of that variant's totals.
type ScoreboardModel struct {
	store    *storage.Store
	variants []registry.GameInfo
	current  int
	scores   []storage.ScoreEntry
	stats    map[string]*storage.VariantStats

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard. initial selects the variant shown
// first; unknown or empty IDs start at the first one.
func NewScoreboardModel(store *storage.Store, initial string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		variants: registry.List(),
		help:     help.New(),
		keys:     newBoardKeys(),
		width:    width,
		height:   height,
	}
	for i, v := range m.variants {
		if v.ID == initial {
			m.current = i
		}
	}
	m.reload()
	return m
}

// reload rebuilds the table and refetches runs and totals for the current
// variant. Store errors leave the board empty rather than failing the screen.
func (m *ScoreboardModel) reload() {
	m.scores = nil
	if m.store != nil {
		if stats, err := m.store.Stats(); err == nil {
			m.stats = stats
		}
		if id := m.Current(); id != "" {
			if scores, err := m.store.TopScores(id, maxScores); err == nil {
				m.scores = scores
			}
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = scoreRow(i+1, s)
	}
	m.table = newRunTable(m.tableWidth(), max(m.height-10, 3))
	m.table.SetRows(rows)
}

func (m ScoreboardModel) showCard() bool {
	return m.width >= minWidthForCard
}

func (m ScoreboardModel) tableWidth() int {
	w := m.width - 6
	if m.showCard() {
		w -= statsCardWidth + 4
	}
	return w
}

// newRunTable builds the runs table. Spare width goes to the date column.
func newRunTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Outcome", Width: 8},
		{Title: "Time", Width: 6},
		{Title: "Date", Width: 12},
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := width - used; spare > 0 {
		columns[4].Width += min(spare, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)
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
	t.SetStyles(styles)
	return t
}

// scoreRow formats one run for the table.
func scoreRow(rank int, s storage.ScoreEntry) table.Row {
	return table.Row{
		"#" + strconv.Itoa(rank),
		strconv.Itoa(s.Score),
		string(s.Outcome),
		formatDuration(s.Duration),
		s.CreatedAt.Format("Jan 02 15:04"),
	}
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// truncate shortens s to at most n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Switch):
			switch msg.String() {
			case "shift+tab", "left", "h":
				m.cycle(-1)
			default:
				m.cycle(1)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycle moves to another variant, wrapping around.
func (m *ScoreboardModel) cycle(delta int) {
	n := len(m.variants)
	if n == 0 {
		return
	}
	m.current = ((m.current+delta)%n + n) % n
	m.reload()
}

// Current returns the ID of the variant on display.
func (m ScoreboardModel) Current() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.current].ID
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerStyled(boardTitleStyle, "WANTED POSTERS", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	runs := boardPanelStyle.Render(m.runsView())
	if m.showCard() {
		runs = lipgloss.JoinHorizontal(lipgloss.Top, runs, "  ", boardPanelStyle.Render(m.statsCard()))
	}
	b.WriteString(runs)
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs renders one tab per variant with the current one highlighted.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.variants))
	for i, v := range m.variants {
		style := boardTabStyle
		if i == m.current {
			style = boardActiveTab
		}
		parts[i] = style.Render(truncate(v.Title, 24))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m ScoreboardModel) runsView() string {
	if len(m.scores) == 0 {
		return boardDimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nOutrun the police to set a high score!")
	}
	return m.table.View()
}

// statsCard summarizes every stored run of the current variant.
func (m ScoreboardModel) statsCard() string {
	st := m.stats[m.Current()]
	if st == nil || st.Runs == 0 {
		return lipgloss.NewStyle().Width(statsCardWidth).Render("Totals\n\nnothing yet")
	}

	escapeRate := 100 * float64(st.Escapes) / float64(st.Runs)
	lines := []string{
		boardTitleStyle.Render("Totals"),
		"",
		fmt.Sprintf("%-10s %d", "Runs", st.Runs),
		fmt.Sprintf("%-10s %s", "Escapes", boardEscapeStyle.Render(fmt.Sprintf("%d (%.0f%%)", st.Escapes, escapeRate))),
		fmt.Sprintf("%-10s %d", "Best", st.HighScore),
		fmt.Sprintf("%-10s %.0f", "Average", st.AvgScore),
		fmt.Sprintf("%-10s %s", "Last run", st.LastPlayed.Format("Jan 02")),
	}
	return lipgloss.NewStyle().Width(statsCardWidth).Render(strings.Join(lines, "\n"))
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program and reports whether
// the user went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, initial string, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, initial, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
