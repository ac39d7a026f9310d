package tasks

import (
	"errors"
	"io"

	"github.com/bnema/todo-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	tasks  []domain.Task
	opts   RenderOptions
	styles styles
	output string
}

func newModel(tasks []domain.Task, opts RenderOptions) model {
	return model{
		tasks:  tasks,
		opts:   opts,
		styles: newStyles(opts.DarkMode),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.tasks, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render lays out the task list once and returns it as a string.
func Render(tasks []domain.Task, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(tasks, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
