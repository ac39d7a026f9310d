package application

import (
	"context"
	"fmt"

	"github.com/bnema/todo-cli/internal/domain"
)

// Editor drives the edit-in-place workflow for one task at a time on top of a
// TaskStore. It is meant to be used from a single goroutine.
type Editor struct {
	store   *TaskStore
	session domain.EditSession
}

func NewEditor(store *TaskStore) *Editor {
	return &Editor{store: store}
}

// Begin starts editing id, cancelling any edit already in progress.
func (e *Editor) Begin(id domain.TaskID) error {
	task, ok := e.store.Get(id)
	if !ok {
		return fmt.Errorf("edit task %s: %w", id, domain.ErrNotFound)
	}

	e.session.Begin(task)
	return nil
}

func (e *Editor) SetDraft(text string) error {
	return e.session.SetDraft(text)
}

func (e *Editor) Draft() string {
	return e.session.Draft()
}

func (e *Editor) State() domain.EditState {
	return e.session.State()
}

func (e *Editor) Target() (domain.TaskID, bool) {
	return e.session.Target()
}

func (e *Editor) Cancel() {
	e.session.Cancel()
}

// Save commits the draft. It returns the task as stored afterwards and
// whether a rename was sent. The editor is idle once Save returns, whatever
// the outcome; a failed rename is reported, not retried.
func (e *Editor) Save(ctx context.Context) (domain.Task, bool, error) {
	id, ok := e.session.Target()
	if !ok {
		return domain.Task{}, false, domain.ErrNotEditing
	}

	current, found := e.store.Get(id)
	if !found {
		e.session.Cancel()
		return domain.Task{}, false, nil
	}

	commit, ok := e.session.Commit(current.Text)
	if !ok {
		return current, false, nil
	}

	updated, err := e.store.Rename(ctx, commit.ID, commit.Text)
	if err != nil {
		return current, false, err
	}

	return updated, true, nil
}
