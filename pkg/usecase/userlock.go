package usecase

import "sync"

// userLocks serializes turns per user ID so that the two appends of
// one turn never interleave with another turn of the same user.
// Distinct users never contend. Entries are reference-counted and
// removed once idle, so the map does not grow with the user population.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocks() *userLocks {
	return &userLocks{
		locks: make(map[string]*userLock),
	}
}

// Lock acquires the lock for the given user ID and returns the release
// function.
func (x *userLocks) Lock(userID string) func() {
	x.mu.Lock()
	entry, ok := x.locks[userID]
	if !ok {
		entry = &userLock{}
		x.locks[userID] = entry
	}
	entry.refs++
	x.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		x.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(x.locks, userID)
		}
		x.mu.Unlock()
	}
}
