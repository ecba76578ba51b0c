// Package prompt renders the interactive choices of a session.
package prompt

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user to choose. Indices returned refer to the options
// slice passed in.
type Prompter interface {
	Select(title string, options []string) (int, error)
	MultiSelect(title string, options []string) ([]int, error)
	Confirm(title, yes, no string) (bool, error)
	Input(title, placeholder string) (string, error)
}

// Terminal is a Prompter backed by bubbletea programs.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

func (t *Terminal) run(m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out))
	return p.Run()
}

func (t *Terminal) Select(title string, options []string) (int, error) {
	final, err := t.run(newPicker(title, options, false))
	if err != nil {
		return 0, err
	}
	m := final.(picker)
	if m.aborted {
		return 0, ErrAborted
	}
	return m.cursor, nil
}

func (t *Terminal) MultiSelect(title string, options []string) ([]int, error) {
	final, err := t.run(newPicker(title, options, true))
	if err != nil {
		return nil, err
	}
	m := final.(picker)
	if m.aborted {
		return nil, ErrAborted
	}
	return m.chosen(), nil
}

func (t *Terminal) Confirm(title, yes, no string) (bool, error) {
	i, err := t.Select(title, []string{yes, no})
	if err != nil {
		return false, err
	}
	return i == 0, nil
}

func (t *Terminal) Input(title, placeholder string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	final, err := t.run(input{title: title, field: ti})
	if err != nil {
		return "", err
	}
	m := final.(input)
	if m.aborted {
		return "", ErrAborted
	}
	return m.value(), nil
}
