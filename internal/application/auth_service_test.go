package application

import (
	"context"
	"testing"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/bnema/todo-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthService, *SessionStore, *mocks.MockAuthClient, *mocks.MockProfileRepository, *mocks.MockSecretStore) {
	t.Helper()

	client := mocks.NewMockAuthClient(t)
	profiles := mocks.NewMockProfileRepository(t)
	secrets := mocks.NewMockSecretStore(t)

	profiles.EXPECT().Load(mockAnyContext()).Return(domain.Profile{}, nil).Once()
	sessions := NewSessionStore(context.Background(), profiles, secrets, nil)

	return NewAuthService(client, sessions, nil), sessions, client, profiles, secrets
}

func TestAuthServiceLoginStartsSession(t *testing.T) {
	auth, sessions, client, profiles, secrets := newAuthFixture(t)

	client.EXPECT().Login(mockAnyContext(), "alice", "s3cret").Return("token-123", nil).Once()
	profiles.EXPECT().Load(mockAnyContext()).Return(domain.Profile{}, nil).Once()
	secrets.EXPECT().Put(mockAnyContext(), "todo://alice/access_token", "token-123").Return(nil).Once()
	profiles.EXPECT().Save(mockAnyContext(), domain.Profile{Username: "alice", TokenRef: "todo://alice/access_token"}).Return(nil).Once()

	session, err := auth.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domain.Session{Username: "alice", Token: "token-123"}, session)

	current, ok := sessions.Current()
	require.True(t, ok)
	assert.Equal(t, session, current)
}

func TestAuthServiceLoginWithWrongCredentialsLeavesNoSession(t *testing.T) {
	auth, sessions, client, _, _ := newAuthFixture(t)

	client.EXPECT().Login(mockAnyContext(), "alice", "wrong").Return("", domain.ErrUnauthorized).Once()

	_, err := auth.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, ok := sessions.Current()
	assert.False(t, ok)
}

func TestAuthServiceRejectsBlankCredentialsWithoutNetwork(t *testing.T) {
	auth, _, _, _, _ := newAuthFixture(t)

	_, err := auth.Login(context.Background(), "  ", "pw")
	require.ErrorIs(t, err, domain.ErrInvalid)

	_, err = auth.Signup(context.Background(), "alice", "")
	require.ErrorIs(t, err, domain.ErrInvalid)
}

func TestAuthServiceSignupFallsBackToLoginWhenNoTokenIssued(t *testing.T) {
	auth, _, client, profiles, secrets := newAuthFixture(t)

	client.EXPECT().Signup(mockAnyContext(), "bob", "pw").Return("", nil).Once()
	client.EXPECT().Login(mockAnyContext(), "bob", "pw").Return("token-bob", nil).Once()
	profiles.EXPECT().Load(mockAnyContext()).Return(domain.Profile{}, nil).Once()
	secrets.EXPECT().Put(mockAnyContext(), "todo://bob/access_token", "token-bob").Return(nil).Once()
	profiles.EXPECT().Save(mockAnyContext(), domain.Profile{Username: "bob", TokenRef: "todo://bob/access_token"}).Return(nil).Once()

	session, err := auth.Signup(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "token-bob", session.Token)
}

func TestAuthServiceSignupSurfacesExistingUser(t *testing.T) {
	auth, sessions, client, _, _ := newAuthFixture(t)

	client.EXPECT().Signup(mockAnyContext(), "alice", "pw").Return("", domain.ErrUserExists).Once()

	_, err := auth.Signup(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, domain.ErrUserExists)
	assert.ErrorContains(t, err, "user already exists")

	_, ok := sessions.Current()
	assert.False(t, ok)
}
