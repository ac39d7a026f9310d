package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bnema/todo-cli/internal/domain"
)

// StatusError reports a non-2xx answer outside the domain error taxonomy.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Detail)
}

// classify maps a failed response onto the domain taxonomy.
func classify(resp *http.Response) error {
	detail := readDetail(resp.Body)

	var kind error
	switch code := resp.StatusCode; {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		kind = domain.ErrUnauthorized
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		kind = domain.ErrInvalid
	case code == http.StatusNotFound:
		kind = domain.ErrNotFound
	case code >= http.StatusInternalServerError:
		kind = domain.ErrUnreachable
	default:
		return &StatusError{
			Method: resp.Request.Method,
			Path:   resp.Request.URL.Path,
			Code:   code,
			Detail: detail,
		}
	}

	if detail == "" {
		return fmt.Errorf("%w (status %d)", kind, resp.StatusCode)
	}
	return fmt.Errorf("%w (status %d): %s", kind, resp.StatusCode, detail)
}

// readDetail extracts a human readable message from an error body. The
// service answers with {"detail": ...}, {"error": ...} or a field map.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxResponseBytes))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}

	for _, key := range []string{"detail", "error", "message"} {
		var msg string
		if value, ok := payload[key]; ok && json.Unmarshal(value, &msg) == nil && msg != "" {
			return msg
		}
	}

	var parts []string
	for field, value := range payload {
		var msgs []string
		if json.Unmarshal(value, &msgs) == nil && len(msgs) > 0 {
			parts = append(parts, field+": "+strings.Join(msgs, " "))
		}
	}
	return strings.Join(parts, "; ")
}
