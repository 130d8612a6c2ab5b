// Package profile caches the partner profile behind a subscribe/notify
// contract.
//
// The store reads through to the platform API and keeps the result for
// a TTL. Callers that render the profile can subscribe to changes:
//
//	store := profile.NewStore(client)
//	ch, cancel := store.Subscribe()
//	defer cancel()
//	p, err := store.Get(ctx)
//
// A failed refresh serves the stale copy when one exists; only a first
// fetch failure is surfaced to the caller.
package profile
