package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/bnema/todo-cli/internal/ports"
)

// AuthClient exchanges credentials for an access token. It sends no
// Authorization header.
type AuthClient struct {
	transport transport
	loginURL  *url.URL
	signupURL *url.URL
}

var _ ports.AuthClient = (*AuthClient)(nil)

func NewAuthClient(cfg Config, opts ...Option) (*AuthClient, error) {
	eps, err := cfg.endpoints()
	if err != nil {
		return nil, err
	}

	o := collect(opts)
	return &AuthClient{
		transport: newTransport(cfg, o.base, o.log),
		loginURL:  eps.login,
		signupURL: eps.signup,
	}, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPayload struct {
	Access string `json:"access"`
}

// Login returns the access token for the credentials. The service answers 400
// or 401 for unknown users and wrong passwords alike.
func (a *AuthClient) Login(ctx context.Context, username, password string) (string, error) {
	var payload tokenPayload
	err := a.transport.do(ctx, http.MethodPost, a.loginURL, credentials{Username: username, Password: password}, &payload)
	if err != nil {
		if errors.Is(err, domain.ErrInvalid) || errors.Is(err, domain.ErrUnauthorized) {
			return "", fmt.Errorf("%w: invalid username or password", domain.ErrUnauthorized)
		}
		return "", err
	}

	token := strings.TrimSpace(payload.Access)
	if token == "" {
		return "", fmt.Errorf("%w: login response carried no access token", domain.ErrUnreachable)
	}
	return token, nil
}

// Signup creates the account. The token is empty when the service created
// the user without issuing one.
func (a *AuthClient) Signup(ctx context.Context, username, password string) (string, error) {
	var payload tokenPayload
	err := a.transport.do(ctx, http.MethodPost, a.signupURL, credentials{Username: username, Password: password}, &payload)
	switch {
	case errors.Is(err, errEmptyBody):
		return "", nil
	case errors.Is(err, domain.ErrInvalid):
		return "", domain.ErrUserExists
	case err != nil:
		return "", err
	}

	return strings.TrimSpace(payload.Access), nil
}
