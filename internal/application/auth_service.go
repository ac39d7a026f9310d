package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/bnema/todo-cli/internal/logger"
	"github.com/bnema/todo-cli/internal/ports"
)

type AuthService struct {
	client   ports.AuthClient
	sessions *SessionStore
	log      *slog.Logger
}

func NewAuthService(client ports.AuthClient, sessions *SessionStore, log *slog.Logger) *AuthService {
	return &AuthService{client: client, sessions: sessions, log: logger.OrNop(log)}
}

// Login exchanges credentials for a token and starts a session. The password
// is only forwarded to the service.
func (a *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	username, err := validateCredentials(username, password)
	if err != nil {
		return domain.Session{}, err
	}

	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	return a.start(ctx, username, token)
}

// Signup registers the user and starts a session. When the service creates
// the account without issuing a token, it logs in with the same credentials.
func (a *AuthService) Signup(ctx context.Context, username, password string) (domain.Session, error) {
	username, err := validateCredentials(username, password)
	if err != nil {
		return domain.Session{}, err
	}

	token, err := a.client.Signup(ctx, username, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("signup: %w", err)
	}

	if strings.TrimSpace(token) == "" {
		a.log.DebugContext(ctx, "signup issued no token, logging in", "username", username)
		token, err = a.client.Login(ctx, username, password)
		if err != nil {
			return domain.Session{}, fmt.Errorf("login after signup: %w", err)
		}
	}

	return a.start(ctx, username, token)
}

func (a *AuthService) Logout(ctx context.Context) error {
	return a.sessions.End(ctx)
}

func (a *AuthService) start(ctx context.Context, username, token string) (domain.Session, error) {
	if err := a.sessions.Start(ctx, username, token); err != nil {
		return domain.Session{}, fmt.Errorf("start session: %w", err)
	}

	session, _ := a.sessions.Current()
	return session, nil
}

func validateCredentials(username, password string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", domain.ErrInvalid)
	}
	return trimmed, nil
}
