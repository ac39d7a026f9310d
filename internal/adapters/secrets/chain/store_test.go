package chain

import (
	"context"
	"errors"
	"testing"

	filestore "github.com/bnema/todo-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/todo-cli/internal/adapters/secrets/pass"
	"github.com/bnema/todo-cli/internal/domain"
	portmocks "github.com/bnema/todo-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ref = "todo://alice/access_token"

func newChain(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback, nil)
	require.NoError(t, err)
	return store, primary, fallback
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil, nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newChain(t)
	primary.EXPECT().Get(mock.Anything, ref).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Get(mock.Anything, ref).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, ref).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReportsNotFoundWhenBothBackendsMiss(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Get(mock.Anything, ref).Return("", passstore.ErrUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, ref).Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), ref)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Put(mock.Anything, ref, "secret").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, ref, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), ref, "secret"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newChain(t)
	primary.EXPECT().Put(mock.Anything, ref, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), ref, "secret"))
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Delete(mock.Anything, ref).Return(nil).Once()
	fallback.EXPECT().Delete(mock.Anything, ref).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), ref))
}

func TestStoreDeleteFailsOnlyWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Delete(mock.Anything, ref).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, ref).Return(errors.New("file failed")).Once()

	err := store.Delete(context.Background(), ref)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreGetDoesNotFallbackOnCanceledContext(t *testing.T) {
	t.Parallel()

	store, primary, _ := newChain(t)
	primary.EXPECT().Get(mock.Anything, ref).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), ref)
	require.ErrorIs(t, err, context.Canceled)
}

func TestForBackendSelectsImplementation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	s, err := ForBackend("file", dir, nil)
	require.NoError(t, err)
	assert.IsType(t, &filestore.Store{}, s)

	s, err = ForBackend("PASS", dir, nil)
	require.NoError(t, err)
	assert.IsType(t, &passstore.Store{}, s)

	s, err = ForBackend("", dir, nil)
	require.NoError(t, err)
	assert.IsType(t, &Store{}, s)

	_, err = ForBackend("keyring", dir, nil)
	require.ErrorContains(t, err, "unknown secrets backend")
}
