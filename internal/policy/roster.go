package policy

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/gosuda/crew/internal/domain"
)

// RosterProvider is the external user-record provider, scoped to the reads
// the roster fetcher needs.
type RosterProvider interface {
	List(ctx context.Context) ([]*domain.User, error)
	ListByDepartment(ctx context.Context, department string) ([]*domain.User, error)
}

// RosterFetcher retrieves the assignment-candidate roster for an acting
// user. Fetches may overlap; completions are applied last-write-wins using a
// monotonic request counter so a stale response arriving after a newer one
// is discarded instead of clobbering the roster. Counters and rosters are
// tracked per acting user: one actor's refresh never supersedes, or leaks
// into, another actor's view.
type RosterFetcher struct {
	provider RosterProvider

	mu    sync.Mutex
	views map[uuid.UUID]*rosterView
}

// rosterView is the per-actor fetch state. Guarded by RosterFetcher.mu.
type rosterView struct {
	seq     uint64 // last issued request
	applied uint64 // last request whose result was kept
	roster  []*domain.User
}

func NewRosterFetcher(provider RosterProvider) *RosterFetcher {
	return &RosterFetcher{
		provider: provider,
		views:    make(map[uuid.UUID]*rosterView),
	}
}

// view returns the actor's view, creating it on first use. Callers hold mu.
func (f *RosterFetcher) view(actor *domain.User) *rosterView {
	key := uuid.Nil
	if actor != nil {
		key = actor.ID
	}
	v, ok := f.views[key]
	if !ok {
		v = &rosterView{}
		f.views[key] = v
	}
	return v
}

// Refresh fetches the assignable roster for the actor and returns the
// actor's current roster after applying the result. If a newer request for
// the same actor completed while this one was in flight, this request's
// result is dropped and the newer roster is returned.
func (f *RosterFetcher) Refresh(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	f.mu.Lock()
	v := f.view(actor)
	v.seq++
	req := v.seq
	f.mu.Unlock()

	scope := AssignableScope(actor)

	var (
		fetched []*domain.User
		err     error
	)
	switch scope.Kind {
	case RosterAll:
		fetched, err = f.provider.List(ctx)
	case RosterDepartment:
		fetched, err = f.provider.ListByDepartment(ctx, scope.Department)
	default:
		if actor != nil {
			fetched = []*domain.User{actor}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("policy.RosterFetcher.Refresh: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if req > v.applied {
		v.applied = req
		v.roster = fetched
	}
	return v.roster, nil
}

// Roster returns the actor's last applied roster without fetching.
func (f *RosterFetcher) Roster(actor *domain.User) []*domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view(actor).roster
}
