package profile

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/refero-hq/partnerctl/internal/api"
	"github.com/refero-hq/partnerctl/internal/logging"
)

// DefaultTTL is how long a fetched profile stays fresh.
const DefaultTTL = 5 * time.Minute

// Fetcher fetches the partner profile from the platform.
// *api.Client satisfies it.
type Fetcher interface {
	GetProfile(ctx context.Context) (*api.PartnerProfile, error)
}

// Store is a read-through cache for the partner profile with a
// subscribe/notify contract. Subscribers are notified whenever a fetch
// yields a different profile than the cached one.
type Store struct {
	fetcher Fetcher
	clock   clockwork.Clock
	ttl     time.Duration

	mu        sync.Mutex
	profile   *api.PartnerProfile
	fetchedAt time.Time
	subs      map[int]chan *api.PartnerProfile
	nextSub   int
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for TTL checks (used in tests).
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithTTL sets the freshness window for cached profiles.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewStore creates a profile store backed by the given fetcher.
func NewStore(fetcher Fetcher, opts ...Option) *Store {
	s := &Store{
		fetcher: fetcher,
		clock:   clockwork.NewRealClock(),
		ttl:     DefaultTTL,
		subs:    make(map[int]chan *api.PartnerProfile),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the partner profile, fetching it when the cached copy is
// missing or stale. Subscribers are notified when the value changes.
func (s *Store) Get(ctx context.Context) (*api.PartnerProfile, error) {
	s.mu.Lock()
	if s.profile != nil && s.clock.Since(s.fetchedAt) < s.ttl {
		cached := s.profile
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	fetched, err := s.fetcher.GetProfile(ctx)
	if err != nil {
		s.mu.Lock()
		stale := s.profile
		s.mu.Unlock()
		if stale != nil {
			// Serve stale rather than fail the caller.
			logging.Warn("profile refresh failed, serving stale", "error", err)
			return stale, nil
		}
		return nil, err
	}

	s.mu.Lock()
	changed := s.profile == nil || *s.profile != *fetched
	s.profile = fetched
	s.fetchedAt = s.clock.Now()
	s.mu.Unlock()

	if changed {
		s.notify(fetched)
	}
	return fetched, nil
}

// Current returns the cached profile without fetching, or nil when no
// profile has been loaded yet.
func (s *Store) Current() *api.PartnerProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Subscribe registers for profile change notifications. The returned
// cancel function releases the subscription and closes the channel;
// calling it more than once is safe.
func (s *Store) Subscribe() (<-chan *api.PartnerProfile, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan *api.PartnerProfile, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Invalidate drops the cached profile so the next Get refetches.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
}

func (s *Store) notify(p *api.PartnerProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		// Drop rather than block on slow subscribers.
		select {
		case ch <- p:
		default:
		}
	}
}
