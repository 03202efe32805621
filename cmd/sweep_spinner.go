package cmd

import (
	"fmt"

	"github.com/carlstedt1/auto-close-tabs/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type sweepDoneMsg struct {
	result application.SweepResult
	err    error
}

type sweepSpinnerModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	result  application.SweepResult
	err     error
	done    bool
}

func newSweepSpinnerModel(label string, run tea.Cmd) sweepSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return sweepSpinnerModel{
		spinner: s,
		label:   label,
		run:     run,
	}
}

func (m sweepSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m sweepSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sweepDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m sweepSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runSweepWithSpinner(cmd *cobra.Command, sweep func() (application.SweepResult, error)) (application.SweepResult, error) {
	run := func() tea.Msg {
		result, err := sweep()
		return sweepDoneMsg{result: result, err: err}
	}

	model := newSweepSpinnerModel("Sweeping inactive panes...", run)
	program := tea.NewProgram(model, tea.WithOutput(cmd.ErrOrStderr()))

	final, err := program.Run()
	if err != nil {
		return application.SweepResult{}, fmt.Errorf("run sweep spinner: %w", err)
	}

	done, ok := final.(sweepSpinnerModel)
	if !ok {
		return application.SweepResult{}, fmt.Errorf("unexpected spinner model %T", final)
	}

	return done.result, done.err
}
