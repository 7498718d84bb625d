package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/theme"
)

// Kind identifies a palette command.
type Kind int

const (
	Refresh Kind = iota
	Logout
	Quit
	Filter
)

// Command is a parsed palette command.
type Command struct {
	Kind   Kind
	Filter model.FilterValue
}

// CommandMsg is emitted when the user executes a valid command.
type CommandMsg Command

// CancelMsg is emitted when the palette is closed without a command.
type CancelMsg struct{}

// Names lists every accepted command, used for completion.
var Names = []string{
	"refresh",
	"logout",
	"quit",
	"filter all",
	"filter active",
	"filter completed",
}

// Parse turns palette input into a Command.
func Parse(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	switch fields[0] {
	case "refresh", "sync", "r":
		return Command{Kind: Refresh}, nil
	case "logout":
		return Command{Kind: Logout}, nil
	case "quit", "q":
		return Command{Kind: Quit}, nil
	case "filter":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: filter all|active|completed")
		}
		f, ok := model.ParseFilter(fields[1])
		if !ok {
			return Command{}, fmt.Errorf("unknown filter %q", fields[1])
		}
		return Command{Kind: Filter, Filter: f}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	err    error
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "refresh, logout, quit, filter active..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Names)
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			c, err := Parse(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.reset()
			return m, func() tea.Msg {
				return CommandMsg(c)
			}
		case "esc":
			m.reset()
			return m, func() tea.Msg {
				return CancelMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) reset() {
	m.input.Reset()
	m.err = nil
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("Command Palette"), m.input.View()}
	if m.err != nil {
		parts = append(parts, theme.InputErrorStyle.Render(m.err.Error()))
	}

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
