package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/bnema/todo-cli/internal/ports"
	"golang.org/x/oauth2"
)

// Client is the authorized task endpoint client. The bearer token is read
// from the session on every request; without a session no request is sent.
type Client struct {
	transport transport
	tokens    ports.TokenSource
	tasksURL  *url.URL
}

var _ ports.TaskClient = (*Client)(nil)

type Option func(*options)

type options struct {
	base *http.Client
	log  *slog.Logger
}

// WithHTTPClient sets the client whose transport carries the requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.base = client
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

func NewClient(cfg Config, tokens ports.TokenSource, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, errors.New("token source is required")
	}

	eps, err := cfg.endpoints()
	if err != nil {
		return nil, err
	}

	o := collect(opts)
	base := http.DefaultTransport
	var timeout time.Duration
	if o.base != nil {
		if o.base.Transport != nil {
			base = o.base.Transport
		}
		timeout = o.base.Timeout
	}

	authorized := &http.Client{
		Transport: &oauth2.Transport{Source: sessionTokenSource{tokens: tokens}, Base: base},
		Timeout:   timeout,
	}

	return &Client{
		transport: newTransport(cfg, authorized, o.log),
		tokens:    tokens,
		tasksURL:  eps.tasks,
	}, nil
}

func (c *Client) List(ctx context.Context) ([]domain.Task, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	var payload []taskPayload
	if err := c.transport.do(ctx, http.MethodGet, c.tasksURL, nil, &payload); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(payload))
	for _, p := range payload {
		task, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (c *Client) Create(ctx context.Context, text string) (domain.Task, error) {
	return c.send(ctx, http.MethodPost, c.tasksURL, map[string]any{"text": text}, "create task")
}

func (c *Client) SetCompleted(ctx context.Context, id domain.TaskID, completed bool) (domain.Task, error) {
	endpoint, err := c.taskURL(id)
	if err != nil {
		return domain.Task{}, err
	}
	return c.send(ctx, http.MethodPatch, endpoint, map[string]any{"completed": completed}, "update task "+string(id))
}

func (c *Client) SetText(ctx context.Context, id domain.TaskID, text string) (domain.Task, error) {
	endpoint, err := c.taskURL(id)
	if err != nil {
		return domain.Task{}, err
	}
	return c.send(ctx, http.MethodPatch, endpoint, map[string]any{"text": text}, "update task "+string(id))
}

func (c *Client) Delete(ctx context.Context, id domain.TaskID) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	endpoint, err := c.taskURL(id)
	if err != nil {
		return err
	}
	if err := c.transport.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method string, endpoint *url.URL, body any, op string) (domain.Task, error) {
	if err := c.requireSession(); err != nil {
		return domain.Task{}, err
	}

	var payload taskPayload
	if err := c.transport.do(ctx, method, endpoint, body, &payload); err != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	task, err := payload.toDomain()
	if err != nil {
		return domain.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	return task, nil
}

func (c *Client) requireSession() error {
	if _, ok := c.tokens.Token(); !ok {
		return domain.ErrNoSession
	}
	return nil
}

func (c *Client) taskURL(id domain.TaskID) (*url.URL, error) {
	trimmed := strings.TrimSpace(string(id))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: task id is empty", domain.ErrInvalid)
	}
	return c.tasksURL.Parse(url.PathEscape(trimmed) + "/")
}

// sessionTokenSource adapts the session to oauth2 so the transport sets the
// Authorization header.
type sessionTokenSource struct {
	tokens ports.TokenSource
}

func (s sessionTokenSource) Token() (*oauth2.Token, error) {
	token, ok := s.tokens.Token()
	if !ok {
		return nil, domain.ErrNoSession
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// taskPayload is the wire form of a task. Ids arrive as JSON numbers from the
// reference backend but are accepted as strings too.
type taskPayload struct {
	ID        json.RawMessage `json:"id"`
	Text      string          `json:"text"`
	Completed bool            `json:"completed"`
	Created   string          `json:"created"`
}

func (p taskPayload) toDomain() (domain.Task, error) {
	id, err := decodeID(p.ID)
	if err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{ID: id, Text: p.Text, Completed: p.Completed}
	if p.Created != "" {
		created, err := time.Parse(time.RFC3339Nano, p.Created)
		if err != nil {
			return domain.Task{}, fmt.Errorf("%w: task %s has malformed created time %q", domain.ErrUnreachable, id, p.Created)
		}
		task.Created = created
	}
	return task, nil
}

func decodeID(raw json.RawMessage) (domain.TaskID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("%w: task without id in response", domain.ErrUnreachable)
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("%w: malformed task id %s", domain.ErrUnreachable, raw)
		}
		return domain.TaskID(s), nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: malformed task id %s", domain.ErrUnreachable, raw)
	}
	return domain.TaskID(n.String()), nil
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
