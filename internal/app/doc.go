// Package app provides the application context for partnerctl.
//
// This package manages application-wide dependencies using the
// functional options pattern, enabling easy testing through dependency
// injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths             // File system paths
//	    Config   *config.Config            // Client configuration
//	    Platform Platform                  // Partner platform API
//	    Profiles *profile.Store            // Partner profile store
//	    Programs *cache.Cache[api.Program] // Keyed program cache
//	    Clock    clockwork.Clock           // Injectable clock
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	app := app.New()
//
//	// Testing with custom dependencies
//	app := app.New(
//	    app.WithPaths(testPaths),
//	    app.WithPlatform(fakePlatform),
//	    app.WithClock(clockwork.NewFakeClock()),
//	)
//
// # Available Options
//
//	WithPaths(paths)       // Custom path configuration
//	WithConfig(config)     // Custom client configuration
//	WithPlatform(platform) // Custom platform API
//	WithClock(clock)       // Custom clock
package app
