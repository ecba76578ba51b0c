package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// picker is a single- or multi-choice list.
type picker struct {
	title    string
	options  []string
	multi    bool
	cursor   int
	selected map[int]bool
	done     bool
	aborted  bool
}

func newPicker(title string, options []string, multi bool) picker {
	return picker{
		title:    title,
		options:  options,
		multi:    multi,
		selected: make(map[int]bool),
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case " ", "x":
		if m.multi && len(m.options) > 0 {
			m.selected[m.cursor] = !m.selected[m.cursor]
		}
	case "a":
		if m.multi {
			all := len(m.chosen()) < len(m.options)
			for i := range m.options {
				m.selected[i] = all
			}
		}
	case "enter":
		if !m.multi && len(m.options) == 0 {
			m.aborted = true
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// chosen returns the selected indices in option order.
func (m picker) chosen() []int {
	var out []int
	for i := range m.options {
		if m.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

func (m picker) View() string {
	var b strings.Builder

	if m.done || m.aborted {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString(" ")
		switch {
		case m.aborted:
			b.WriteString(dimStyle.Render("cancelled"))
		case m.multi:
			labels := make([]string, 0, len(m.selected))
			for _, i := range m.chosen() {
				labels = append(labels, m.options[i])
			}
			b.WriteString(doneStyle.Render(strings.Join(labels, ", ")))
		default:
			b.WriteString(doneStyle.Render(m.options[m.cursor]))
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, opt := range m.options {
		pointer := "  "
		line := opt
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
			line = cursorStyle.Render(opt)
		}
		if m.multi {
			box := "[ ]"
			if m.selected[i] {
				box = "[x]"
			}
			line = box + " " + line
		}
		b.WriteString(pointer + line + "\n")
	}

	help := "↑/↓ move • enter confirm • esc cancel"
	if m.multi {
		help = "↑/↓ move • space toggle • a all • enter confirm • esc cancel"
	}
	b.WriteString(dimStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

// input is a one-line text prompt.
type input struct {
	title   string
	field   textinput.Model
	done    bool
	aborted bool
}

func (m input) Init() tea.Cmd { return textinput.Blink }

func (m input) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

func (m input) value() string {
	return strings.TrimSpace(m.field.Value())
}

func (m input) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", titleStyle.Render(m.title), doneStyle.Render(m.value()))
	}
	if m.aborted {
		return fmt.Sprintf("%s %s\n", titleStyle.Render(m.title), dimStyle.Render("cancelled"))
	}
	return fmt.Sprintf("%s\n%s\n", titleStyle.Render(m.title), m.field.View())
}
