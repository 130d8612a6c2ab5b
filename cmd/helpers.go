package cmd

import (
	"context"
	"net/http"

	"github.com/refero-hq/partnerctl/internal/api"
	"github.com/refero-hq/partnerctl/internal/app"
	"github.com/refero-hq/partnerctl/internal/cache"
	"github.com/refero-hq/partnerctl/internal/config"
	"github.com/refero-hq/partnerctl/internal/errors"
	"github.com/refero-hq/partnerctl/internal/logging"
)

// platform returns the application's platform API.
func platform() app.Platform {
	return app.Default.Platform
}

// loadProgram fetches a program by slug, preferring the keyed cache.
func loadProgram(ctx context.Context, slug string) (*api.Program, error) {
	if err := config.ValidateProgramSlug(slug); err != nil {
		return nil, errors.ValidationError(err.Error())
	}

	key := cache.ProgramKey(slug)
	if cached, ok := app.Default.Programs.Get(key); ok {
		return &cached, nil
	}

	program, err := platform().GetProgram(ctx, slug)
	if err != nil {
		// Only a platform 404 means the program does not exist; a
		// transport or auth failure must not masquerade as one.
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, errors.ProgramNotFound(slug)
		}
		return nil, errors.APIError("get-program", err)
	}

	app.Default.Programs.Set(key, *program)
	return program, nil
}

// refreshProgram refetches a program whose cache entry was invalidated,
// so later reads in this process see current platform state. A quiet
// channel is a no-op.
func refreshProgram(ctx context.Context, invalidated <-chan string, slug string) {
	select {
	case key := <-invalidated:
		logging.Debug("refreshing invalidated program", "key", key)
		if _, err := loadProgram(ctx, slug); err != nil {
			logging.Debug("program refresh failed", "program", slug, "error", err)
		}
	default:
	}
}

// listPrograms fetches all programs and refreshes the cache.
func listPrograms(ctx context.Context) ([]api.Program, error) {
	programs, err := platform().ListPrograms(ctx)
	if err != nil {
		return nil, errors.APIError("list-programs", err)
	}

	for _, p := range programs {
		app.Default.Programs.Set(cache.ProgramKey(p.Slug), p)
	}
	return programs, nil
}
