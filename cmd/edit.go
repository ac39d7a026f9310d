package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/todo-cli/internal/application"
	"github.com/bnema/todo-cli/internal/domain"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newEditCmd(app *app) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task in place",
		Long:  "Edit a task in place. Without --text an inline editor opens: enter saves, esc cancels.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTask(cmd.Context(), app, args[0], func(ctx context.Context, task domain.Task) error {
				editor := application.NewEditor(app.tasks)
				if err := editor.Begin(task.ID); err != nil {
					return err
				}

				draft := text
				if !cmd.Flags().Changed("text") {
					value, saved, err := runEditPrompt(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), task)
					if err != nil {
						editor.Cancel()
						return err
					}
					if !saved {
						editor.Cancel()
						_, err := fmt.Fprintln(cmd.OutOrStdout(), "Edit cancelled.")
						return err
					}
					draft = value
				}

				if err := editor.SetDraft(draft); err != nil {
					return err
				}
				updated, _, err := editor.Save(ctx)
				if err != nil {
					return err
				}
				return writeRenameOutcome(cmd, task, updated)
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New task text (skips the inline editor)")

	return cmd
}

type editPromptModel struct {
	taskID    domain.TaskID
	input     textinput.Model
	hint      lipgloss.Style
	saved     bool
	cancelled bool
}

func newEditPromptModel(task domain.Task) editPromptModel {
	input := textinput.New()
	input.Prompt = "> "
	input.SetValue(task.Text)
	input.Focus()

	return editPromptModel{
		taskID: task.ID,
		input:  input,
		hint:   lipgloss.NewStyle().Faint(true),
	}
}

func (m editPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m editPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.saved = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m editPromptModel) View() string {
	if m.saved || m.cancelled {
		return ""
	}
	return fmt.Sprintf("Editing task %s\n%s\n%s\n", m.taskID, m.input.View(), m.hint.Render("enter to save, esc to cancel"))
}

// runEditPrompt returns the edited text and whether the user confirmed it.
func runEditPrompt(ctx context.Context, input io.Reader, output io.Writer, task domain.Task) (string, bool, error) {
	p := tea.NewProgram(
		newEditPromptModel(task),
		tea.WithInput(input),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("run editor: %w", err)
	}

	result, ok := finalModel.(editPromptModel)
	if !ok {
		return "", false, fmt.Errorf("unexpected final editor model type %T", finalModel)
	}
	return result.input.Value(), result.saved, nil
}
