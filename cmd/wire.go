package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bnema/todo-cli/internal/adapters/api"
	tasksrender "github.com/bnema/todo-cli/internal/adapters/render/tasks"
	tomlrepo "github.com/bnema/todo-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/todo-cli/internal/adapters/secrets/chain"
	"github.com/bnema/todo-cli/internal/application"
	"github.com/bnema/todo-cli/internal/config"
	"github.com/bnema/todo-cli/internal/domain"
	"github.com/bnema/todo-cli/internal/logger"
	"github.com/bnema/todo-cli/internal/version"
)

type app struct {
	log          *slog.Logger
	sessions     *application.SessionStore
	auth         *application.AuthService
	tasks        *application.TaskStore
	prefs        *application.Preferences
	taskRenderer func([]domain.Task, tasksrender.RenderOptions) (string, error)
	now          func() time.Time
}

func wireApp(logOutput io.Writer) (*app, error) {
	v, err := config.New("")
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	settings, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Output: logOutput,
	})

	profiles, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	secrets, err := chainstore.ForBackend(settings.SecretsBackend, settings.SecretsDir, log)
	if err != nil {
		return nil, fmt.Errorf("wire token store: %w", err)
	}

	sessions := application.NewSessionStore(context.Background(), profiles, secrets, log)

	apiConfig := api.Config{
		BaseURL:    settings.BaseURL,
		APIPath:    settings.APIPath,
		AuthPath:   settings.AuthPath,
		SignupPath: settings.SignupPath,
		UserAgent:  "todo/" + version.Version,
		Timeout:    settings.HTTPTimeout,
	}
	httpClient := &http.Client{}

	taskClient, err := api.NewClient(apiConfig, sessions, api.WithHTTPClient(httpClient), api.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("wire task client: %w", err)
	}
	authClient, err := api.NewAuthClient(apiConfig, api.WithHTTPClient(httpClient), api.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("wire auth client: %w", err)
	}

	return &app{
		log:          log,
		sessions:     sessions,
		auth:         application.NewAuthService(authClient, sessions, log),
		tasks:        application.NewTaskStore(taskClient, log),
		prefs:        application.NewPreferences(profiles),
		taskRenderer: tasksrender.Render,
		now:          time.Now,
	}, nil
}
