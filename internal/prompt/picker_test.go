package prompt

import (
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPickerSingle(t *testing.T) {
	m := press(newPicker("Select month", []string{"March", "February", "January"}, false),
		keyDown, keyDown, keyDown, keyUp, keyEnter).(picker)

	if !m.done || m.aborted {
		t.Fatalf("done = %v, aborted = %v", m.done, m.aborted)
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	if !strings.Contains(m.View(), "February") {
		t.Errorf("final view = %q", m.View())
	}
}

func TestPickerMulti(t *testing.T) {
	m := press(newPicker("Select habits", []string{"Exercise", "Read", "Sleep"}, true),
		keySpace, keyDown, keyDown, keySpace, keyEnter).(picker)

	if got := m.chosen(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("chosen = %v, want [0 2]", got)
	}
}

func TestPickerToggleAll(t *testing.T) {
	m := press(newPicker("Select dates", []string{"1", "2", "3"}, true), keySpace, runes("a")).(picker)
	if got := m.chosen(); len(got) != 3 {
		t.Fatalf("after select all chosen = %v", got)
	}

	m = press(m, runes("a")).(picker)
	if got := m.chosen(); len(got) != 0 {
		t.Fatalf("after clear all chosen = %v", got)
	}
}

func TestPickerAbort(t *testing.T) {
	m := press(newPicker("Select", []string{"a"}, false), keyEsc).(picker)
	if !m.aborted {
		t.Fatal("esc did not abort")
	}

	m = press(newPicker("Select", nil, false), keyEnter).(picker)
	if !m.aborted {
		t.Fatal("enter on an empty single-choice list should abort")
	}
}

func TestPickerEmptyMultiConfirms(t *testing.T) {
	m := press(newPicker("Select", nil, true), keySpace, keyEnter).(picker)
	if m.aborted || !m.done || len(m.chosen()) != 0 {
		t.Fatalf("empty multi picker: %+v", m)
	}
}

func TestInput(t *testing.T) {
	ti := textinput.New()
	ti.Focus()
	m := press(input{title: "Habit name", field: ti}, runes("  Stretch "), keyEnter).(input)

	if !m.done {
		t.Fatal("enter did not finish input")
	}
	if m.value() != "Stretch" {
		t.Fatalf("value = %q, want Stretch", m.value())
	}
}
