// Package testutil provides test utilities for partnerctl tests
package testutil

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/refero-hq/partnerctl/internal/api"
	"github.com/refero-hq/partnerctl/internal/app"
	"github.com/refero-hq/partnerctl/internal/config"
	"github.com/refero-hq/partnerctl/internal/errors"
)

// FakePlatform is an in-memory stand-in for the partner platform API.
type FakePlatform struct {
	mu sync.Mutex

	Programs   []api.Program
	ProgramErr error
	Profile    *api.PartnerProfile
	ProfileErr error

	// SubmitErr is returned from SubmitApplication when set.
	SubmitErr error

	// Submissions records every payload received.
	Submissions []api.ApplicationPayload
}

func (f *FakePlatform) ListPrograms(ctx context.Context) ([]api.Program, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Program(nil), f.Programs...), nil
}

func (f *FakePlatform) GetProgram(ctx context.Context, slug string) (*api.Program, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProgramErr != nil {
		return nil, f.ProgramErr
	}
	for i := range f.Programs {
		if f.Programs[i].Slug == slug {
			p := f.Programs[i]
			return &p, nil
		}
	}
	return nil, &api.Error{StatusCode: http.StatusNotFound, Message: "program not found"}
}

func (f *FakePlatform) GetProfile(ctx context.Context) (*api.PartnerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	if f.Profile == nil {
		return nil, errors.ProfileUnavailable(nil)
	}
	p := *f.Profile
	return &p, nil
}

func (f *FakePlatform) SubmitApplication(ctx context.Context, payload api.ApplicationPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SubmitErr != nil {
		return f.SubmitErr
	}
	f.Submissions = append(f.Submissions, payload)
	return nil
}

// SubmissionCount returns how many submissions the platform accepted.
func (f *FakePlatform) SubmissionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Submissions)
}

// LastSubmission returns the most recent payload, or nil.
func (f *FakePlatform) LastSubmission() *api.ApplicationPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Submissions) == 0 {
		return nil
	}
	p := f.Submissions[len(f.Submissions)-1]
	return &p
}

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	TmpDir   string
	Paths    *config.Paths
	Config   *config.Config
	Platform *FakePlatform
	Clock    *clockwork.FakeClock
	App      *app.App
}

// NewTestEnv creates a test environment with a fake platform and clock,
// installs it as the default app, and restores the previous default on
// cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	paths := &config.Paths{
		ConfigDir: filepath.Join(tmpDir, "config"),
		StateDir:  filepath.Join(tmpDir, "state"),
		DraftsDir: filepath.Join(tmpDir, "state", "drafts"),
	}

	for _, dir := range []string{paths.ConfigDir, paths.StateDir, paths.DraftsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	platform := &FakePlatform{
		Programs: []api.Program{
			{ID: "prog_1", Slug: "acme", Name: "Acme", Domain: "acme.com", TermsURL: "https://acme.com/terms"},
			{ID: "prog_2", Slug: "globex", Name: "Globex", Domain: "globex.io"},
		},
		Profile: &api.PartnerProfile{Email: "a@b.com", Name: "A", Website: "https://a.dev"},
	}

	clock := clockwork.NewFakeClock()
	cfg := &config.Config{APIBaseURL: "http://fake.invalid", Token: "ref_test"}

	testApp := app.New(
		app.WithPaths(paths),
		app.WithConfig(cfg),
		app.WithPlatform(platform),
		app.WithClock(clock),
	)

	previous := app.Default
	app.SetDefault(testApp)
	t.Cleanup(func() {
		app.SetDefault(previous)
	})

	return &TestEnv{
		T:        t,
		TmpDir:   tmpDir,
		Paths:    paths,
		Config:   cfg,
		Platform: platform,
		Clock:    clock,
		App:      testApp,
	}
}
