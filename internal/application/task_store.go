package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/bnema/todo-cli/internal/logger"
	"github.com/bnema/todo-cli/internal/ports"
)

// TaskStore is the client-side view of the task collection. It only ever
// holds data the remote service confirmed: every mutation goes through the
// TaskClient first and is applied locally after it succeeds.
//
// Each mutation gets a sequence number per task id. A response is applied
// only when its sequence is still the latest issued for that id, so a slow
// response cannot overwrite a newer one.
type TaskStore struct {
	client ports.TaskClient
	log    *slog.Logger

	mu      sync.Mutex
	tasks   []domain.Task
	seq     map[domain.TaskID]uint64
	lastSeq uint64
}

func NewTaskStore(client ports.TaskClient, log *slog.Logger) *TaskStore {
	return &TaskStore{
		client: client,
		log:    logger.OrNop(log),
		seq:    map[domain.TaskID]uint64{},
	}
}

// Load replaces the whole collection with the service's list, preserving its
// order. On failure the previous collection is kept.
func (s *TaskStore) Load(ctx context.Context) error {
	tasks, err := s.client.List(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "load tasks failed", "error", err)
		return fmt.Errorf("list tasks: %w", err)
	}

	loaded := make([]domain.Task, len(tasks))
	copy(loaded, tasks)

	s.mu.Lock()
	s.tasks = loaded
	s.mu.Unlock()

	s.log.DebugContext(ctx, "tasks loaded", "count", len(loaded))
	return nil
}

// Add creates a task and appends the created entity. Blank text is rejected
// without contacting the service.
func (s *TaskStore) Add(ctx context.Context, text string) (domain.Task, error) {
	trimmed := domain.NormalizeText(text)
	if trimmed == "" {
		return domain.Task{}, domain.ErrEmptyText
	}

	created, err := s.client.Create(ctx, trimmed)
	if err != nil {
		s.log.WarnContext(ctx, "create task failed", "error", err)
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := domain.IndexOf(s.tasks, created.ID); i >= 0 {
		s.tasks[i] = created
	} else {
		s.tasks = append(s.tasks, created)
	}

	return created, nil
}

// Toggle flips the completion flag of a known task. Unknown ids are a no-op.
func (s *TaskStore) Toggle(ctx context.Context, id domain.TaskID) (domain.Task, error) {
	s.mu.Lock()
	i := domain.IndexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Task{}, nil
	}
	current := s.tasks[i]
	seq := s.issueLocked(id)
	s.mu.Unlock()

	updated, err := s.client.SetCompleted(ctx, id, !current.Completed)
	if err != nil {
		s.log.WarnContext(ctx, "toggle task failed", "task_id", id, "error", err)
		return domain.Task{}, fmt.Errorf("toggle task %s: %w", id, err)
	}

	return s.apply(ctx, id, seq, updated), nil
}

// Rename changes the text of a known task. Blank or unchanged text, and
// unknown ids, are a no-op that returns the current task.
func (s *TaskStore) Rename(ctx context.Context, id domain.TaskID, text string) (domain.Task, error) {
	trimmed := domain.NormalizeText(text)

	s.mu.Lock()
	i := domain.IndexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Task{}, nil
	}
	current := s.tasks[i]
	if trimmed == "" || trimmed == current.Text {
		s.mu.Unlock()
		return current, nil
	}
	seq := s.issueLocked(id)
	s.mu.Unlock()

	updated, err := s.client.SetText(ctx, id, trimmed)
	if err != nil {
		s.log.WarnContext(ctx, "rename task failed", "task_id", id, "error", err)
		return domain.Task{}, fmt.Errorf("rename task %s: %w", id, err)
	}

	return s.apply(ctx, id, seq, updated), nil
}

// Remove deletes a task and drops it locally once the service confirmed. On
// any failure, including ErrNotFound, the local element is kept; callers
// reconcile with Load. Remove issues no sequence number: a failed delete must
// not supersede a toggle or rename that is still in flight.
func (s *TaskStore) Remove(ctx context.Context, id domain.TaskID) error {
	if err := s.client.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "delete task failed", "task_id", id, "error", err)
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := domain.IndexOf(s.tasks, id); i >= 0 {
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	}
	delete(s.seq, id)

	return nil
}

// Tasks returns a copy of the collection in service order.
func (s *TaskStore) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Get(id domain.TaskID) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.tasks, id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i], true
}

func (s *TaskStore) issueLocked(id domain.TaskID) uint64 {
	s.lastSeq++
	s.seq[id] = s.lastSeq
	return s.lastSeq
}

// apply replaces the task in place when seq is still current and returns the
// task as the collection now holds it.
func (s *TaskStore) apply(ctx context.Context, id domain.TaskID, seq uint64, updated domain.Task) domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq[id] != seq {
		s.log.DebugContext(ctx, "discarding superseded task response", "task_id", id, "seq", seq, "latest", s.seq[id])
		if i := domain.IndexOf(s.tasks, id); i >= 0 {
			return s.tasks[i]
		}
		return updated
	}

	if i := domain.IndexOf(s.tasks, id); i >= 0 {
		s.tasks[i] = updated
	}
	return updated
}
