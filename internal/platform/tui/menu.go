package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chorpolice/internal/config"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/registry"
	"github.com/vovakirdan/chorpolice/internal/storage"
)

// MenuItem represents a selectable variant in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a variant
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model listing every registered variant.
// Best scores are read from store when it is not nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			//nolint:errcheck // Missing best score just hides the column
			item.Best, _ = store.HighScore(g.ID)
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuBannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(44)
	menuActiveCard  = menuCardStyle.BorderForeground(lipgloss.Color("11"))
)

// menuBanner is the thief running from an officer.
var menuBanner = []string{
	` o   C H O R   P O L I C E     o `,
	`/|\_                        _/|\`,
	`/ \      catch me if you can  / \`,
}

// blurbs describe the built-in variants on their menu cards.
var blurbs = map[string]string{
	config.VariantClassic: "Cross town to the flag. Stomp or dodge.",
	config.VariantEndless: "The streets never end. Neither do the police.",
}

// View renders the banner and one card per variant.
func (m MenuModel) View() string {
	if m.quitting || m.selected != nil || m.openScoreboard {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range menuBanner {
		b.WriteString(centerStyled(menuBannerStyle, line, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, item := range m.items {
		style := menuCardStyle
		if i == m.cursor {
			style = menuActiveCard
		}
		b.WriteString(centerBlock(style.Render(item.card()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(menuHintStyle, "↑/↓ choose   enter run   tab wanted posters   q quit", m.width))
	b.WriteString("\n")
	return b.String()
}

// card is the text inside an item's box.
func (it MenuItem) card() string {
	head := it.Title
	if it.Best > 0 {
		head += fmt.Sprintf("   best %d", it.Best)
	}
	if blurb, ok := blurbs[it.GameID]; ok {
		return head + "\n" + blurb
	}
	return head
}

// centerBlock centers every line of a multi-line block by the widest line.
func centerBlock(block string, width int) string {
	pad := (width - lipgloss.Width(block)) / 2
	if pad <= 0 {
		return block
	}
	indent := strings.Repeat(" ", pad)
	return indent + strings.ReplaceAll(block, "\n", "\n"+indent)
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

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

// centerStyled styles text and then centers it.
func centerStyled(style lipgloss.Style, text string, width int) string {
	return centerText(style.Render(text), width)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu as its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	switch {
	case !ok:
		return MenuResult{Config: cfg, Quit: true}, nil
	case m.WantsScoreboard():
		return MenuResult{Config: m.Config(), WantsScoreboard: true}, nil
	case m.IsQuitting() || m.Selected() == nil:
		return MenuResult{Config: m.Config(), Quit: true}, nil
	default:
		return MenuResult{Config: m.Config(), GameID: m.Selected().GameID}, nil
	}
}
