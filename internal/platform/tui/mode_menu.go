package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chorpolice/internal/config"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/world"
)

// ModeSelection holds the user's choice from the mode selector.
type ModeSelection struct {
	Variant string
	Level   string // Built-in level name; empty keeps the configured one
}

// LevelInfo describes a built-in level for the picker.
type LevelInfo struct {
	ID   string
	Name string
}

// BuiltinLevels lists the embedded levels with their display names.
// Levels that fail to parse are listed under their file name.
func BuiltinLevels() []LevelInfo {
	names := world.Levels()
	levels := make([]LevelInfo, 0, len(names))
	for _, id := range names {
		info := LevelInfo{ID: id, Name: id}
		if def, err := world.LoadLevel(id); err == nil && def.Name != "" {
			info.Name = def.Name
		}
		levels = append(levels, info)
	}
	return levels
}

var modeOptions = []string{
	"Classic Escape (reach the flag)",
	"Endless Escape",
	"Select Level...",
}

// ModeModel lets users choose between the classic and endless variants and
// pick a level for the classic one.
type ModeModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	levels        []LevelInfo
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     ModeSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewModeModel creates a new mode selection model.
func NewModeModel(width, height int) ModeModel {
	return ModeModel{
		levels:    BuiltinLevels(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m ModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m ModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(modeOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		switch m.cursor {
		case 0:
			return m.choose(ModeSelection{Variant: config.VariantClassic})
		case 1:
			return m.choose(ModeSelection{Variant: config.VariantEndless})
		case 2:
			if len(m.levels) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m ModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.choose(ModeSelection{
			Variant: config.VariantClassic,
			Level:   m.levels[m.levelCursor].ID,
		})
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

func (m ModeModel) choose(sel ModeSelection) (tea.Model, tea.Cmd) {
	m.choosing = false
	m.selection = sel
	return m, tea.Quit
}

// View renders the mode/level selection.
func (m ModeModel) View() string {
	if m.quitting || m.back || !m.choosing {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m ModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("C H O R   P O L I C E", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, mode := range modeOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+mode, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

func (m ModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, level := range m.levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%2d. %s", cursor, i+1, level.Name)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m ModeModel) Selected() *ModeSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ModeModel) WantsBack() bool {
	return m.back
}

// RunModeSelector runs the mode selection and returns the selection, or nil
// when the user backed out or quit.
func RunModeSelector(cfg core.RuntimeConfig) (*ModeSelection, error) {
	model := NewModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(ModeModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}

	return m.Selected(), nil
}
