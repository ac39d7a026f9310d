package ports

import (
	"context"

	"github.com/bnema/todo-cli/internal/domain"
)

// TaskClient performs one authorized exchange with the remote task service per
// call. Failures are reported with the domain error taxonomy.
type TaskClient interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, text string) (domain.Task, error)
	SetCompleted(ctx context.Context, id domain.TaskID, completed bool) (domain.Task, error)
	SetText(ctx context.Context, id domain.TaskID, text string) (domain.Task, error)
	Delete(ctx context.Context, id domain.TaskID) error
}

// TokenSource exposes the bearer token of the current session, if any.
type TokenSource interface {
	Token() (string, bool)
}
