package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/taskstore"
)

// LoginInput contains credentials.
type LoginInput struct {
	Username string
	PIN      string
}

// Login is the use case for starting a session.
type Login struct {
	api    domain.AuthAPI
	cache  *cache.Client
	store  *taskstore.Store
	logger domain.Logger
}

// NewLogin creates a new Login use case.
func NewLogin(api domain.AuthAPI, c *cache.Client, store *taskstore.Store, logger domain.Logger) *Login {
	return &Login{api: api, cache: c, store: store, logger: logger}
}

// Execute logs in. Cached data from a previous session is dropped.
func (uc *Login) Execute(ctx context.Context, in LoginInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.PIN == "" {
		return nil, domain.ErrEmptyCredentials
	}

	user, err := cache.Mutate(ctx, uc.cache, "login", func(ctx context.Context) (*domain.User, error) {
		return uc.api.Login(ctx, username, in.PIN)
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	uc.cache.Clear()
	uc.store.Clear()
	uc.logger.Info(0, "auth", fmt.Sprintf("logged in as %s", user.Username))
	return user, nil
}

// Setup is the use case for creating the first account.
type Setup struct {
	api   domain.AuthAPI
	cache *cache.Client
}

// NewSetup creates a new Setup use case.
func NewSetup(api domain.AuthAPI, c *cache.Client) *Setup {
	return &Setup{api: api, cache: c}
}

// Execute creates the account.
func (uc *Setup) Execute(ctx context.Context, in domain.SetupInput) (*domain.User, error) {
	if in.PIN == "" {
		return nil, domain.ErrEmptyCredentials
	}
	user, err := cache.Mutate(ctx, uc.cache, "setup", func(ctx context.Context) (*domain.User, error) {
		return uc.api.Setup(ctx, in)
	})
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	uc.cache.Clear()
	return user, nil
}

// Logout is the use case for ending a session.
type Logout struct {
	api    domain.AuthAPI
	cache  *cache.Client
	store  *taskstore.Store
	logger domain.Logger
}

// NewLogout creates a new Logout use case.
func NewLogout(api domain.AuthAPI, c *cache.Client, store *taskstore.Store, logger domain.Logger) *Logout {
	return &Logout{api: api, cache: c, store: store, logger: logger}
}

// Execute logs out. Local data is cleared even when the request fails.
func (uc *Logout) Execute(ctx context.Context) error {
	err := uc.api.Logout(ctx)
	uc.cache.Clear()
	uc.store.Clear()
	if err != nil {
		uc.logger.Warn(0, "auth", fmt.Sprintf("logout request failed: %v", err))
		return fmt.Errorf("logout: %w", err)
	}
	uc.logger.Info(0, "auth", "logged out")
	return nil
}

// ChangePINInput contains the current and new PIN.
type ChangePINInput struct {
	CurrentPIN string
	NewPIN     string
}

// ChangePIN is the use case for replacing the account PIN.
type ChangePIN struct {
	api   domain.AuthAPI
	cache *cache.Client
}

// NewChangePIN creates a new ChangePIN use case.
func NewChangePIN(api domain.AuthAPI, c *cache.Client) *ChangePIN {
	return &ChangePIN{api: api, cache: c}
}

// Execute changes the PIN.
func (uc *ChangePIN) Execute(ctx context.Context, in ChangePINInput) error {
	if in.CurrentPIN == "" || in.NewPIN == "" {
		return domain.ErrEmptyCredentials
	}
	_, err := cache.Mutate(ctx, uc.cache, "change pin", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, uc.api.ChangePIN(ctx, in.CurrentPIN, in.NewPIN)
	})
	if err != nil {
		return fmt.Errorf("change pin: %w", err)
	}
	return nil
}
