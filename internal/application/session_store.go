package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/bnema/todo-cli/internal/logger"
	"github.com/bnema/todo-cli/internal/ports"
)

// SessionStore holds the single process-wide session. The username lives in
// the profile repository and the bearer token in the secret store, so a
// session survives restarts without ever persisting a password.
type SessionStore struct {
	profiles ports.ProfileRepository
	secrets  ports.SecretStore
	log      *slog.Logger

	mu      sync.RWMutex
	current *domain.Session
}

var _ ports.TokenSource = (*SessionStore)(nil)

// NewSessionStore rehydrates the persisted session. An absent or unreadable
// profile, or a missing token, leaves the store without a session.
func NewSessionStore(ctx context.Context, profiles ports.ProfileRepository, secrets ports.SecretStore, log *slog.Logger) *SessionStore {
	s := &SessionStore{
		profiles: profiles,
		secrets:  secrets,
		log:      logger.OrNop(log),
	}
	s.rehydrate(ctx)
	return s
}

func (s *SessionStore) rehydrate(ctx context.Context) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "ignoring unreadable session profile", "error", err)
		return
	}
	if !profile.HasSession() {
		return
	}

	token, err := s.secrets.Get(ctx, profile.TokenRef)
	if err != nil {
		s.log.WarnContext(ctx, "ignoring session without stored token", "username", profile.Username, "error", err)
		return
	}

	session := domain.Session{Username: profile.Username, Token: strings.TrimSpace(token)}
	if !session.Valid() {
		return
	}

	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()
}

// Start records a new session in memory and durable storage, replacing any
// previous one.
func (s *SessionStore) Start(ctx context.Context, username, token string) error {
	session := domain.Session{Username: strings.TrimSpace(username), Token: strings.TrimSpace(token)}
	if !session.Valid() {
		return fmt.Errorf("%w: username and token are required", domain.ErrInvalid)
	}

	profile, err := s.profiles.Load(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "overwriting unreadable session profile", "error", err)
		profile = domain.Profile{}
	}
	previousRef := profile.TokenRef

	ref := domain.TokenRefFor(session.Username)
	if err := s.secrets.Put(ctx, ref, session.Token); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}

	profile.Username = session.Username
	profile.TokenRef = ref
	if err := s.profiles.Save(ctx, profile); err != nil {
		if rollbackErr := s.secrets.Delete(ctx, ref); rollbackErr != nil {
			return fmt.Errorf("save session profile and rollback stored token: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("save session profile: %w", err)
	}

	if previousRef != "" && previousRef != ref {
		if err := s.secrets.Delete(ctx, previousRef); err != nil {
			s.log.WarnContext(ctx, "failed to delete previous access token", "ref", previousRef, "error", err)
		}
	}

	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()

	return nil
}

func (s *SessionStore) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.Session{}, false
	}
	return *s.current, true
}

func (s *SessionStore) Token() (string, bool) {
	session, ok := s.Current()
	if !ok {
		return "", false
	}
	return session.Token, true
}

// End clears the session. The in-memory session is dropped even when the
// durable state cannot be cleaned up.
func (s *SessionStore) End(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	profile, err := s.profiles.Load(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "resetting unreadable session profile", "error", err)
		profile = domain.Profile{}
	}
	ref := profile.TokenRef

	profile.Username = ""
	profile.TokenRef = ""
	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("clear session profile: %w", err)
	}

	if ref == "" {
		return nil
	}
	if err := s.secrets.Delete(ctx, ref); err != nil {
		return fmt.Errorf("delete access token: %w", err)
	}

	return nil
}
