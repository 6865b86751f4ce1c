package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vetrek/pilot"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	cursorMark = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render("> ")
)

// ---------------------------------------------------------------------------
// Home
// ---------------------------------------------------------------------------

type homeScreen struct{ id string }

func (s homeScreen) DestinationID() string { return s.id }
func (s homeScreen) MakeView() tea.Model   { return homeModel{status: new(string)} }

type homeModel struct {
	nav    *pilot.Coordinator
	status *string
}

func (m homeModel) WithNavigator(c *pilot.Coordinator) tea.Model {
	m.nav = c
	return m
}

func (m homeModel) Init() tea.Cmd { return nil }

func (m homeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.nav == nil {
		return m, nil
	}
	status := m.status
	switch km.String() {
	case "l":
		if !pilot.Contains[listScreen](m.nav) {
			m.nav.Push(listScreen{id: pilot.NewID()}, func() {
				*status = "left the fruit list"
			})
		}
	case "s":
		cfg := pilot.Sheet(true, pilot.DetentMedium)
		m.nav.Present(settingsScreen{id: pilot.NewID()}, &cfg, func() {
			*status = "settings closed"
		})
	case "a":
		m.nav.Present(aboutScreen{id: pilot.NewID()}, nil, func() {
			*status = "about dismissed"
		})
	}
	return m, nil
}

func (m homeModel) View() string {
	lines := []string{
		titleStyle.Render("pilot demo"),
		"",
		itemStyle.Render("l  browse fruit"),
		itemStyle.Render("s  settings (sheet, nested navigation)"),
		itemStyle.Render("a  about (full-screen cover)"),
		"",
		dimStyle.Render("esc back · ctrl+c quit"),
	}
	if *m.status != "" {
		lines = append(lines, "", dimStyle.Render(*m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ---------------------------------------------------------------------------
// Fruit list and detail
// ---------------------------------------------------------------------------

type listScreen struct{ id string }

func (s listScreen) DestinationID() string { return s.id }
func (s listScreen) MakeView() tea.Model {
	return listModel{items: []string{"apple", "pear", "quince", "medlar"}}
}

type listModel struct {
	nav    *pilot.Coordinator
	items  []string
	cursor int
}

func (m listModel) WithNavigator(c *pilot.Coordinator) tea.Model {
	m.nav = c
	return m
}

func (m listModel) Init() tea.Cmd { return nil }

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		if m.nav != nil {
			m.nav.Push(detailScreen{id: pilot.NewID(), item: m.items[m.cursor]}, nil)
		}
	}
	return m, nil
}

func (m listModel) View() string {
	lines := []string{titleStyle.Render("fruit"), ""}
	for i, it := range m.items {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorMark
		}
		lines = append(lines, prefix+it)
	}
	lines = append(lines, "", dimStyle.Render("enter detail · esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type detailScreen struct {
	id   string
	item string
}

func (s detailScreen) DestinationID() string { return s.id }
func (s detailScreen) MakeView() tea.Model   { return detailModel{item: s.item} }

type detailModel struct {
	nav  *pilot.Coordinator
	item string
}

func (m detailModel) WithNavigator(c *pilot.Coordinator) tea.Model {
	m.nav = c
	return m
}

func (m detailModel) Init() tea.Cmd { return nil }

func (m detailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.nav == nil {
		return m, nil
	}
	if km.String() == "h" {
		// jump over the whole flow in one go
		m.nav.Pop(pilot.ToRoot())
	}
	return m, nil
}

func (m detailModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.item),
		"",
		fmt.Sprintf("everything there is to know about the %s", m.item),
		"",
		dimStyle.Render("h home · esc back"),
	)
}

// ---------------------------------------------------------------------------
// Settings sheet (hosts its own navigation stack)
// ---------------------------------------------------------------------------

type settingsScreen struct{ id string }

func (s settingsScreen) DestinationID() string { return s.id }
func (s settingsScreen) MakeView() tea.Model   { return settingsModel{} }

type settingsModel struct{ nav *pilot.Coordinator }

func (m settingsModel) WithNavigator(c *pilot.Coordinator) tea.Model {
	m.nav = c
	return m
}

func (m settingsModel) Init() tea.Cmd { return nil }

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.nav == nil {
		return m, nil
	}
	if km.String() == "t" && !pilot.Contains[themeScreen](m.nav) {
		m.nav.Push(themeScreen{id: pilot.NewID()}, nil)
	}
	return m, nil
}

func (m settingsModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("settings"),
		"",
		itemStyle.Render("t  theme"),
		"",
		dimStyle.Render("this sheet has its own stack · esc closes it"),
	)
}

type themeScreen struct{ id string }

func (s themeScreen) DestinationID() string { return s.id }
func (s themeScreen) MakeView() tea.Model   { return themeModel{} }

type themeModel struct{}

func (m themeModel) Init() tea.Cmd                       { return nil }
func (m themeModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (m themeModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("theme"),
		"",
		"pushed inside the sheet's child coordinator",
		"",
		dimStyle.Render("esc pops back to settings"),
	)
}

// ---------------------------------------------------------------------------
// About cover
// ---------------------------------------------------------------------------

// aboutScreen carries its presentation metadata itself, so callers can
// present it with a nil configuration.
type aboutScreen struct{ id string }

func (s aboutScreen) DestinationID() string            { return s.id }
func (s aboutScreen) MakeView() tea.Model              { return aboutModel{} }
func (s aboutScreen) Presentation() pilot.Presentation { return pilot.FullScreen(false) }

type aboutModel struct{}

func (m aboutModel) Init() tea.Cmd                       { return nil }
func (m aboutModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (m aboutModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("pilot"),
		"",
		"coordinator-style navigation for Bubble Tea",
		"",
		dimStyle.Render("esc dismisses this cover"),
	)
}
