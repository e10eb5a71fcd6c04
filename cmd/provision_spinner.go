package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type taskDoneMsg struct{}

type taskSpinnerModel struct {
	spinner spinner.Model
	label   string
	wait    tea.Cmd
	done    bool
}

func newTaskSpinnerModel(label string, wait tea.Cmd) taskSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return taskSpinnerModel{
		spinner: s,
		label:   label,
		wait:    wait,
	}
}

func (m taskSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m taskSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case taskDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m taskSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runTaskSpinner shows label until done is closed. The task itself runs
// elsewhere; the spinner only watches it.
func runTaskSpinner(ctx context.Context, output io.Writer, label string, done <-chan struct{}) error {
	waitCmd := func() tea.Msg {
		select {
		case <-done:
		case <-ctx.Done():
		}
		return taskDoneMsg{}
	}

	p := tea.NewProgram(
		newTaskSpinnerModel(label, waitCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if _, ok := finalModel.(taskSpinnerModel); !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return nil
}
