package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/bnema/todo-cli/internal/testutil/fakeapi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func newTestClient(t *testing.T, server *fakeapi.Server, token string) *Client {
	t.Helper()

	client, err := NewClient(Config{BaseURL: server.URL(), UserAgent: "todo/test"}, staticTokens{token: token})
	require.NoError(t, err)
	return client
}

func TestClientListDecodesTasksInServiceOrder(t *testing.T) {
	server := fakeapi.New(t)
	first := server.Seed("alice", "buy milk", false)
	second := server.Seed("alice", "call mum", true)
	server.Seed("bob", "not mine", false)

	client := newTestClient(t, server, server.TokenFor("alice"))

	tasks, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, domain.TaskID(itoa(first)), tasks[0].ID)
	assert.Equal(t, "buy milk", tasks[0].Text)
	assert.False(t, tasks[0].Completed)
	assert.False(t, tasks[0].Created.IsZero())
	assert.Equal(t, domain.TaskID(itoa(second)), tasks[1].ID)
	assert.True(t, tasks[1].Completed)
}

func TestClientSendsBearerRequestIDAndUserAgent(t *testing.T) {
	server := fakeapi.New(t)
	token := server.TokenFor("alice")
	client := newTestClient(t, server, token)

	_, err := client.Create(context.Background(), "buy milk")
	require.NoError(t, err)

	requests := server.Requests()
	require.Len(t, requests, 1)
	got := requests[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/todo/", got.Path)
	assert.Equal(t, "Bearer "+token, got.Authorization)
	assert.Equal(t, "todo/test", got.UserAgent)
	assert.Equal(t, "application/json", got.ContentType)
	_, err = uuid.Parse(got.RequestID)
	assert.NoError(t, err)
}

func TestClientMutationsRoundTrip(t *testing.T) {
	server := fakeapi.New(t)
	client := newTestClient(t, server, server.TokenFor("alice"))
	ctx := context.Background()

	created, err := client.Create(ctx, "buy milk")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "buy milk", created.Text)

	toggled, err := client.SetCompleted(ctx, created.ID, true)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.Equal(t, created.ID, toggled.ID)

	renamed, err := client.SetText(ctx, created.ID, "buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", renamed.Text)
	assert.True(t, renamed.Completed)

	require.NoError(t, client.Delete(ctx, created.ID))
	assert.Empty(t, server.Tasks("alice"))
}

func TestClientWithoutSessionSendsNothing(t *testing.T) {
	server := fakeapi.New(t)
	client := newTestClient(t, server, "")
	ctx := context.Background()

	_, err := client.List(ctx)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = client.Create(ctx, "x")
	require.ErrorIs(t, err, domain.ErrNoSession)
	_, err = client.SetCompleted(ctx, "1", true)
	require.ErrorIs(t, err, domain.ErrNoSession)
	require.ErrorIs(t, client.Delete(ctx, "1"), domain.ErrNoSession)

	assert.Empty(t, server.Requests())
}

func TestClientMapsStatusesToDomainErrors(t *testing.T) {
	server := fakeapi.New(t)
	client := newTestClient(t, server, server.TokenFor("alice"))
	ctx := context.Background()

	_, err := newTestClient(t, server, "forged.token.value").List(ctx)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = client.Create(ctx, "   ")
	require.ErrorIs(t, err, domain.ErrInvalid)
	assert.ErrorContains(t, err, "text: This field may not be blank.")

	_, err = client.SetText(ctx, "999", "anything")
	require.ErrorIs(t, err, domain.ErrNotFound)

	server.FailNext(http.StatusBadGateway)
	_, err = client.List(ctx)
	require.ErrorIs(t, err, domain.ErrUnreachable)

	server.FailNext(http.StatusTeapot)
	_, err = client.List(ctx)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTeapot, statusErr.Code)
	assert.Equal(t, "/api/todo/", statusErr.Path)
}

func TestClientDeleteOfVanishedTaskIsNotFound(t *testing.T) {
	server := fakeapi.New(t)
	id := server.Seed("alice", "buy milk", false)
	client := newTestClient(t, server, server.TokenFor("alice"))

	server.DeleteDirect(id)

	err := client.Delete(context.Background(), domain.TaskID(itoa(id)))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientTransportFailureIsUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := NewClient(Config{BaseURL: baseURL}, staticTokens{token: "t"})
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestClientAppliesDefaultTimeoutWithoutDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	client, err := NewClient(Config{BaseURL: server.URL, Timeout: 50 * time.Millisecond}, staticTokens{token: "t"})
	require.NoError(t, err)

	_, err = client.List(context.Background())
	require.ErrorIs(t, err, domain.ErrUnreachable)
}

func TestClientCanceledContextIsNotUnreachable(t *testing.T) {
	server := fakeapi.New(t)
	client := newTestClient(t, server, server.TokenFor("alice"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrUnreachable)
}

func TestClientAcceptsStringIDsAndFractionalTimes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a1","text":"x","completed":false,"created":"2024-05-01T10:00:00.123456Z"},{"id":7,"text":"y","completed":true,"created":""}]`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL}, staticTokens{token: "t"})
	require.NoError(t, err)

	tasks, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, domain.TaskID("a1"), tasks[0].ID)
	assert.Equal(t, 2024, tasks[0].Created.Year())
	assert.Equal(t, domain.TaskID("7"), tasks[1].ID)
	assert.True(t, tasks[1].Created.IsZero())
}

func TestClientRejectsTaskWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"x","completed":false}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL}, staticTokens{token: "t"})
	require.NoError(t, err)

	_, err = client.Create(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrUnreachable)
	assert.ErrorContains(t, err, "without id")
}

func TestConfigEndpoints(t *testing.T) {
	eps, err := Config{BaseURL: "https://tasks.example.com/prefix", APIPath: "v1/", AuthPath: "auth/", SignupPath: "signup/"}.endpoints()
	require.NoError(t, err)
	assert.Equal(t, "https://tasks.example.com/prefix/v1/todo/", eps.tasks.String())
	assert.Equal(t, "https://tasks.example.com/prefix/auth/login/", eps.login.String())
	assert.Equal(t, "https://tasks.example.com/prefix/auth/signup/", eps.signup.String())

	eps, err = Config{BaseURL: "http://127.0.0.1:8000"}.endpoints()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000/api/todo/", eps.tasks.String())
	assert.Equal(t, "http://127.0.0.1:8000/auth/register/", eps.signup.String())

	_, err = Config{BaseURL: "ftp://example.com"}.endpoints()
	require.Error(t, err)
	_, err = Config{}.endpoints()
	require.Error(t, err)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
