package application

import (
	"context"
	"fmt"

	"github.com/bnema/todo-cli/internal/ports"
)

// Preferences manages presentation settings persisted next to the session.
type Preferences struct {
	profiles ports.ProfileRepository
}

func NewPreferences(profiles ports.ProfileRepository) *Preferences {
	return &Preferences{profiles: profiles}
}

func (p *Preferences) DarkMode(ctx context.Context) (bool, error) {
	profile, err := p.profiles.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load profile: %w", err)
	}
	return profile.DarkMode, nil
}

func (p *Preferences) SetDarkMode(ctx context.Context, enabled bool) error {
	profile, err := p.profiles.Load(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	profile.DarkMode = enabled
	if err := p.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
