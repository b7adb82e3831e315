// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectPair lets the user pick two of labels and returns their indexes in
// the order picked. It returns nil when the user quits.
func SelectPair(labels []string) ([]int, error) {
	p := tea.NewProgram(model{labels: labels})
	m, err := p.Run()
	if err != nil {
		return nil, err
	}
	return m.(model).selected, nil
}

type model struct {
	labels   []string
	cursor   int
	selected []int
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc":
			m.selected = nil
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.labels)-1 {
				m.cursor++
			}
		case " ":
			if i := slices.Index(m.selected, m.cursor); i >= 0 {
				m.selected = slices.Delete(slices.Clone(m.selected), i, i+1)
			} else if len(m.selected) < 2 {
				m.selected = append(slices.Clone(m.selected), m.cursor)
			}
		case "enter":
			if len(m.selected) == 2 {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	s := "Select two results:\n\n"
	for i, label := range m.labels {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if slices.Contains(m.selected, i) {
			mark = "x"
		}
		s += fmt.Sprintf("%s [%s] %s\n", cursor, mark, label)
	}
	return s + "\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n"
}
