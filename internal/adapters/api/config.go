package api

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 30 * time.Second
)

// Config locates the remote service. It is built once from the client
// settings and shared by the task and auth clients.
type Config struct {
	BaseURL    string
	APIPath    string
	AuthPath   string
	SignupPath string
	UserAgent  string
	// Timeout applies to each request whose context carries no deadline.
	Timeout time.Duration
}

type endpoints struct {
	tasks  *url.URL
	login  *url.URL
	signup *url.URL
}

func (c Config) endpoints() (endpoints, error) {
	base, err := parseBaseURL(c.BaseURL)
	if err != nil {
		return endpoints{}, err
	}

	apiRoot, err := resolve(base, orDefault(c.APIPath, "/api/"))
	if err != nil {
		return endpoints{}, fmt.Errorf("parse api path: %w", err)
	}
	authRoot, err := resolve(base, orDefault(c.AuthPath, "/auth/"))
	if err != nil {
		return endpoints{}, fmt.Errorf("parse auth path: %w", err)
	}

	tasks, err := resolve(apiRoot, "todo/")
	if err != nil {
		return endpoints{}, err
	}
	login, err := resolve(authRoot, "login/")
	if err != nil {
		return endpoints{}, err
	}
	signup, err := resolve(authRoot, orDefault(c.SignupPath, "register/"))
	if err != nil {
		return endpoints{}, fmt.Errorf("parse signup path: %w", err)
	}

	return endpoints{tasks: tasks, login: login, signup: signup}, nil
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultRequestTimeout
	}
	return c.Timeout
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("api base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}
	return parsed, nil
}

// resolve treats root as a directory, so a relative path is appended to it.
func resolve(root *url.URL, path string) (*url.URL, error) {
	dir := *root
	if dir.Path == "" || dir.Path[len(dir.Path)-1] != '/' {
		dir.Path += "/"
		dir.RawPath = ""
	}
	return dir.Parse(path)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
