package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tasksrender "github.com/bnema/todo-cli/internal/adapters/render/tasks"
	"github.com/bnema/todo-cli/internal/domain"
	"github.com/spf13/cobra"
)

type taskOutput struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Created   *time.Time `json:"created,omitempty"`
}

func newListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show your tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(app)
			if err != nil {
				return err
			}

			if asJSON {
				err = app.tasks.Load(cmd.Context())
			} else {
				err = runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading tasks...", app.tasks.Load)
			}
			if err != nil {
				return err
			}

			return writeTasksOutput(cmd, app, session, app.tasks.Tasks(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeTasksOutput(cmd *cobra.Command, app *app, session domain.Session, tasks []domain.Task, asJSON bool) error {
	if asJSON {
		out := make([]taskOutput, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, toTaskOutput(task))
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	darkMode, err := app.prefs.DarkMode(cmd.Context())
	if err != nil {
		app.log.WarnContext(cmd.Context(), "using default theme", "error", err)
	}

	rendered, err := app.taskRenderer(tasks, tasksrender.RenderOptions{
		Now:      app.now(),
		Username: session.Username,
		DarkMode: darkMode,
	})
	if err != nil {
		return fmt.Errorf("render tasks: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func toTaskOutput(task domain.Task) taskOutput {
	out := taskOutput{ID: string(task.ID), Text: task.Text, Completed: task.Completed}
	if !task.Created.IsZero() {
		created := task.Created
		out.Created = &created
	}
	return out
}

func newAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(app); err != nil {
				return err
			}

			task, err := app.tasks.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s\n", task.ID, task.Text)
			return err
		},
	}
}

func newDoneCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between open and done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTask(cmd.Context(), app, args[0], func(ctx context.Context, task domain.Task) error {
				updated, err := app.tasks.Toggle(ctx, task.ID)
				if err != nil {
					return err
				}

				verb := "Reopened"
				if updated.Completed {
					verb = "Completed"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", verb, updated.ID, updated.Text)
				return err
			})
		},
	}
}

func newRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <text...>",
		Short: "Replace the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTask(cmd.Context(), app, args[0], func(ctx context.Context, task domain.Task) error {
				updated, err := app.tasks.Rename(ctx, task.ID, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return writeRenameOutcome(cmd, task, updated)
			})
		},
	}
}

func newRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTask(cmd.Context(), app, args[0], func(ctx context.Context, task domain.Task) error {
				if err := app.tasks.Remove(ctx, task.ID); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", task.ID)
				return err
			})
		},
	}
}

// withTask loads the collection and runs fn on the task named by rawID. The
// store only acts on tasks it has seen, so every mutation starts from a fresh
// list.
func withTask(ctx context.Context, app *app, rawID string, fn func(context.Context, domain.Task) error) error {
	if _, err := loadTasks(ctx, app); err != nil {
		return err
	}

	task, err := lookupTask(app, rawID)
	if err != nil {
		return err
	}
	return fn(ctx, task)
}

func writeRenameOutcome(cmd *cobra.Command, before, after domain.Task) error {
	if after.Text == before.Text {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "No change to task %s.\n", before.ID)
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s: %s\n", after.ID, after.Text)
	return err
}
