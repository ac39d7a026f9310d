package ports

import "context"

type AuthClient interface {
	Login(ctx context.Context, username, password string) (string, error)
	// Signup may return an empty token when the service creates the user
	// without issuing one.
	Signup(ctx context.Context, username, password string) (string, error)
}
