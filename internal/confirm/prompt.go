// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package confirm

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/tfctl/awsctl/internal/log"
)

// TerminalPrompter asks on a terminal with a small bubbletea program. When In
// is not a terminal it declines without asking.
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// NewTerminalPrompter prompts on stdin and stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{In: os.Stdin, Out: os.Stderr}
}

// Confirm implements Prompter.
func (p *TerminalPrompter) Confirm(message string) (bool, error) {
	f, ok := p.In.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		log.Warnf("stdin is not a terminal, declining: %s", message)
		return false, nil
	}

	prog := tea.NewProgram(promptModel{message: message},
		tea.WithInput(p.In), tea.WithOutput(p.Out))
	m, err := prog.Run()
	if err != nil {
		return false, err
	}
	return m.(promptModel).answer, nil
}

type promptModel struct {
	message string
	answer  bool
	done    bool
}

func (m promptModel) Init() tea.Cmd { return nil }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.answer, m.done = true, true
			return m, tea.Quit
		case "n", "N", "enter", "q", "esc", "ctrl+c":
			m.answer, m.done = false, true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m promptModel) View() string {
	if m.done {
		answer := "no"
		if m.answer {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n", m.message, answer)
	}
	return fmt.Sprintf("%s [y/N] ", m.message)
}
