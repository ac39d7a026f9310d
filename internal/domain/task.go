package domain

import (
	"strings"
	"time"
)

// TaskID is the identifier the remote service assigned to a task. The client
// treats it as opaque and never generates one.
type TaskID string

type Task struct {
	ID        TaskID
	Text      string
	Completed bool
	Created   time.Time
}

// NormalizeText trims the surrounding whitespace a user typed around a task.
func NormalizeText(text string) string {
	return strings.TrimSpace(text)
}

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(tasks []Task, id TaskID) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
