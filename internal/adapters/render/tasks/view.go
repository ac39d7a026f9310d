package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now      time.Time
	Username string
	DarkMode bool
}

func renderView(tasks []domain.Task, opts RenderOptions, s styles) string {
	open, done := countByState(tasks)

	lines := []string{
		s.title.Render(title(opts.Username)),
		s.header.Render(fmt.Sprintf("%d open, %d done", open, done)),
	}

	if len(tasks) == 0 {
		lines = append(lines, s.empty.Render("No tasks yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	idWidth := 0
	for _, task := range tasks {
		idWidth = max(idWidth, len(task.ID))
	}

	for _, task := range tasks {
		lines = append(lines, taskLine(task, idWidth, opts.Now, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func taskLine(task domain.Task, idWidth int, now time.Time, s styles) string {
	box := s.open.Render("[ ]")
	text := s.open.Render(task.Text)
	if task.Completed {
		box = s.check.Render("[x]")
		text = s.done.Render(task.Text)
	}

	id := s.id.Render(fmt.Sprintf("%-*s", idWidth, task.ID))
	line := box + " " + id + "  " + text
	if !task.Created.IsZero() {
		line += "  " + s.created.Render("(created "+formatCreated(task.Created, now)+")")
	}
	return line
}

func title(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return "Tasks"
	}
	return "Tasks for " + username
}

func countByState(tasks []domain.Task) (open, done int) {
	for _, task := range tasks {
		if task.Completed {
			done++
		} else {
			open++
		}
	}
	return open, done
}

func formatCreated(created, now time.Time) string {
	if now.IsZero() {
		return created.Format("02 Jan 2006 15:04")
	}

	elapsed := now.Sub(created)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed/time.Minute), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed/time.Hour), "hour") + " ago"
	case elapsed < 7*24*time.Hour:
		return plural(int(elapsed/(24*time.Hour)), "day") + " ago"
	default:
		return "on " + created.In(now.Location()).Format("02 Jan 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
