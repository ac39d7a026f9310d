package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/bnema/todo-cli/internal/logger"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// transport performs one JSON exchange per call with the remote service. It
// never retries.
type transport struct {
	http      *http.Client
	userAgent string
	timeout   time.Duration
	log       *slog.Logger
}

func newTransport(cfg Config, client *http.Client, log *slog.Logger) transport {
	if client == nil {
		client = http.DefaultClient
	}
	return transport{
		http:      client,
		userAgent: cfg.UserAgent,
		timeout:   cfg.timeout(),
		log:       logger.OrNop(log),
	}
}

// do sends body (when non-nil) as JSON to endpoint and decodes a 2xx answer
// into out (when non-nil). Transport failures map to ErrUnreachable, failed
// statuses through classify.
func (t transport) do(ctx context.Context, method string, endpoint *url.URL, body any, out any) error {
	ctx, cancel := t.requestContext(ctx)
	defer cancel()

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	started := time.Now()
	resp, err := t.http.Do(req)
	if err != nil {
		t.log.DebugContext(ctx, "request failed", "method", method, "path", endpoint.Path, "request_id", requestID, "error", err)
		if errors.Is(err, domain.ErrNoSession) {
			return domain.ErrNoSession
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return context.Canceled
		}
		return fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	t.log.DebugContext(ctx, "request completed",
		"method", method,
		"path", endpoint.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return classify(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("%w: decode response: %v", domain.ErrUnreachable, err)
	}
	return nil
}

var errEmptyBody = fmt.Errorf("%w: empty response body", domain.ErrUnreachable)

func (t transport) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t.timeout)
}
