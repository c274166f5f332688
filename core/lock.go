package core

import "sync"

// CommunityLocks serializes the read-then-write paths which share invite
// snapshot rows of a single community. Attribution of a join and the handling
// of an invite change must not interleave, members of distinct communities
// never contend.
type CommunityLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCommunityLocks returns a ready to use CommunityLocks.
func NewCommunityLocks() *CommunityLocks {
	return &CommunityLocks{
		locks: map[string]*sync.Mutex{},
	}
}

// Lock acquires the lock of the given namespace and returns the func to
// release it.
func (l *CommunityLocks) Lock(ns string) func() {
	l.mu.Lock()

	m, ok := l.locks[ns]
	if !ok {
		m = &sync.Mutex{}
		l.locks[ns] = m
	}

	l.mu.Unlock()

	m.Lock()

	return m.Unlock
}
