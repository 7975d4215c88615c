package out

import (
	"context"
	"strings"

	"finpro/internal/modules/progress/domain"
	progressout "finpro/internal/modules/progress/port/out"
	"finpro/internal/platform/config"
)

// ConfigIdentityProvider serves the identity resolved from env, .env and flags.
type ConfigIdentityProvider struct {
	identity config.Identity
}

func NewConfigIdentityProvider(identity config.Identity) progressout.IdentityProvider {
	return &ConfigIdentityProvider{identity: identity}
}

func (p *ConfigIdentityProvider) Current(_ context.Context) (*domain.Identity, error) {
	if p.identity.TelegramID <= 0 {
		return nil, nil
	}
	return &domain.Identity{
		ID:        p.identity.TelegramID,
		FirstName: strings.TrimSpace(p.identity.FirstName),
		LastName:  strings.TrimSpace(p.identity.LastName),
		Username:  strings.TrimPrefix(strings.TrimSpace(p.identity.Username), "@"),
	}, nil
}
