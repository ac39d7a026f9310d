package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bnema/todo-cli/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

const passwordEnv = "TODO_PASSWORD"

type credentialFlags struct {
	username string
	password string
}

func (f *credentialFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "Account password (default: $"+passwordEnv+")")
	_ = cmd.MarkFlagRequired("username")
}

func (f *credentialFlags) resolvedPassword() string {
	if f.password != "" {
		return f.password
	}
	return os.Getenv(passwordEnv)
}

func newSignupCmd(app *app) *cobra.Command {
	var creds credentialFlags

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.auth.Signup(cmd.Context(), creds.username, creds.resolvedPassword())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", session.Username)
			return err
		},
	}
	creds.bind(cmd)

	return cmd
}

func newLoginCmd(app *app) *cobra.Command {
	var creds credentialFlags

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the task service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.auth.Login(cmd.Context(), creds.username, creds.resolvedPassword())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", session.Username)
			return err
		},
	}
	creds.bind(cmd)

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return err
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := requireSession(app)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, session.Username); err != nil {
				return err
			}

			claims, ok := tokenClaims(session.Token)
			if !ok {
				return nil
			}
			if claims.Subject != "" {
				if _, err := fmt.Fprintf(out, "token subject: %s\n", claims.Subject); err != nil {
					return err
				}
			}
			if claims.ExpiresAt != nil {
				expires := claims.ExpiresAt.Time
				state := "expires"
				if expires.Before(app.now()) {
					state = "expired"
				}
				if _, err := fmt.Fprintf(out, "token %s: %s\n", state, expires.In(time.Local).Format(time.RFC1123)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// tokenClaims decodes the registered claims of a JWT access token without
// verifying it; the service remains the only judge of validity.
func tokenClaims(token string) (jwt.RegisteredClaims, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return jwt.RegisteredClaims{}, false
	}
	return claims, true
}

func requireSession(app *app) (domain.Session, error) {
	session, ok := app.sessions.Current()
	if !ok {
		return domain.Session{}, fmt.Errorf("%w (run `todo login` first)", domain.ErrNoSession)
	}
	return session, nil
}

func loadTasks(ctx context.Context, app *app) (domain.Session, error) {
	session, err := requireSession(app)
	if err != nil {
		return domain.Session{}, err
	}
	if err := app.tasks.Load(ctx); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func lookupTask(app *app, raw string) (domain.Task, error) {
	id := domain.TaskID(strings.TrimSpace(raw))
	if id == "" {
		return domain.Task{}, fmt.Errorf("%w: task id is empty", domain.ErrInvalid)
	}

	task, ok := app.tasks.Get(id)
	if !ok {
		return domain.Task{}, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return task, nil
}
