package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	filestore "github.com/bnema/todo-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/todo-cli/internal/adapters/secrets/pass"
	"github.com/bnema/todo-cli/internal/logger"
	"github.com/bnema/todo-cli/internal/ports"
)

// Backend names accepted by ForBackend.
const (
	BackendChain = "chain"
	BackendFile  = "file"
	BackendPass  = "pass"
)

// Store tries the primary backend first and falls back to the secondary one
// on any failure other than cancellation.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	log      *slog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, log *slog.Logger) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback, log: logger.OrNop(log)}, nil
}

// ForBackend builds the token store selected by the secrets.backend setting.
func ForBackend(backend string, dir string, log *slog.Logger) (ports.SecretStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendChain:
		return NewStore(passstore.NewStore(), filestore.NewStore(dir), log)
	case BackendFile:
		return filestore.NewStore(dir), nil
	case BackendPass:
		return passstore.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", backend)
	}
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	err := s.primary.Put(ctx, ref, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}
	s.log.DebugContext(ctx, "primary token store put failed, using fallback", "ref", ref, "error", err)

	fallbackErr := s.fallback.Put(ctx, ref, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	value, err := s.primary.Get(ctx, ref)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}
	s.log.DebugContext(ctx, "primary token store get failed, using fallback", "ref", ref, "error", err)

	fallbackValue, fallbackErr := s.fallback.Get(ctx, ref)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete removes ref from both backends so a token written to the fallback
// does not outlive a logout.
func (s *Store) Delete(ctx context.Context, ref string) error {
	err := s.primary.Delete(ctx, ref)
	if shouldSkipFallback(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, ref)
	switch {
	case err == nil || fallbackErr == nil:
		return nil
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", err, fallbackErr)
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
