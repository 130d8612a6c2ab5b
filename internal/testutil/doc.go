// Package testutil provides shared test fixtures for partnerctl.
//
// NewTestEnv builds an isolated environment: temp config/state dirs, a
// FakePlatform preloaded with two programs and a partner profile, and
// a fake clock. The environment is installed as the default app
// context and torn down automatically.
package testutil
