package domain

import "strings"

type EditState int

const (
	EditIdle EditState = iota
	EditEditing
)

func (s EditState) String() string {
	switch s {
	case EditIdle:
		return "idle"
	case EditEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// EditCommit is the rename an accepted edit asks the task store to perform.
type EditCommit struct {
	ID   TaskID
	Text string
}

// EditSession tracks at most one task being edited. The draft is independent
// of the task collection until Commit.
type EditSession struct {
	state  EditState
	target TaskID
	draft  string
}

func (e *EditSession) State() EditState {
	return e.state
}

func (e *EditSession) Target() (TaskID, bool) {
	if e.state != EditEditing {
		return "", false
	}
	return e.target, true
}

func (e *EditSession) Draft() string {
	return e.draft
}

// Begin starts editing task, discarding any edit already in progress.
func (e *EditSession) Begin(task Task) {
	e.state = EditEditing
	e.target = task.ID
	e.draft = task.Text
}

func (e *EditSession) SetDraft(text string) error {
	if e.state != EditEditing {
		return ErrNotEditing
	}
	e.draft = text
	return nil
}

func (e *EditSession) Cancel() {
	e.reset()
}

// Commit ends the edit. It reports a rename only when the trimmed draft is
// non-empty and differs from currentText; otherwise the edit is dropped.
func (e *EditSession) Commit(currentText string) (EditCommit, bool) {
	if e.state != EditEditing {
		return EditCommit{}, false
	}

	commit := EditCommit{ID: e.target, Text: strings.TrimSpace(e.draft)}
	e.reset()

	if commit.Text == "" || commit.Text == currentText {
		return EditCommit{}, false
	}
	return commit, true
}

func (e *EditSession) reset() {
	e.state = EditIdle
	e.target = ""
	e.draft = ""
}
