package ports

import "context"

// SecretStore holds access tokens keyed by token reference. Get reports
// domain.ErrSecretNotFound for a reference that was never stored.
type SecretStore interface {
	Get(ctx context.Context, ref string) (string, error)
	Put(ctx context.Context, ref string, value string) error
	Delete(ctx context.Context, ref string) error
}
