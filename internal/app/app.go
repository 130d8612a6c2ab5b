// Package app provides the application context for partnerctl.
// It allows dependency injection for testing.
package app

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/refero-hq/partnerctl/internal/api"
	"github.com/refero-hq/partnerctl/internal/cache"
	"github.com/refero-hq/partnerctl/internal/config"
	"github.com/refero-hq/partnerctl/internal/logging"
	"github.com/refero-hq/partnerctl/internal/profile"
)

// Platform is the partner platform API surface partnerctl depends on.
// *api.Client satisfies it; tests substitute fakes.
type Platform interface {
	ListPrograms(ctx context.Context) ([]api.Program, error)
	GetProgram(ctx context.Context, slug string) (*api.Program, error)
	GetProfile(ctx context.Context) (*api.PartnerProfile, error)
	SubmitApplication(ctx context.Context, payload api.ApplicationPayload) error
}

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths

	// Config is the loaded client configuration
	Config *config.Config

	// Platform is the partner platform API
	Platform Platform

	// Profiles is the partner profile store
	Profiles *profile.Store

	// Programs caches program data keyed by cache.ProgramKey(slug)
	Programs *cache.Cache[api.Program]

	// Clock drives TTLs and toast timers
	Clock clockwork.Clock
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithConfig sets a custom configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithPlatform sets a custom platform API
func WithPlatform(p Platform) Option {
	return func(a *App) {
		a.Platform = p
	}
}

// WithClock sets a custom clock
func WithClock(clock clockwork.Clock) Option {
	return func(a *App) {
		a.Clock = clock
	}
}

// New creates a new App with the given options.
// If a platform client is not provided via WithPlatform, one is built
// from the loaded configuration.
func New(opts ...Option) *App {
	app := &App{
		Paths: config.DefaultPaths(),
		Clock: clockwork.NewRealClock(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		cfg, err := config.Load(app.Paths)
		if err != nil {
			logging.Debug("failed to load config, using defaults", "error", err)
			cfg = &config.Config{APIBaseURL: config.DefaultAPIBaseURL}
		}
		app.Config = cfg
	}

	if app.Platform == nil {
		app.Platform = api.NewClient(app.Config.APIBaseURL, app.Config.Token)
	}

	app.Profiles = profile.NewStore(app.Platform, profile.WithClock(app.Clock))
	app.Programs = cache.New[api.Program]()

	return app
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
