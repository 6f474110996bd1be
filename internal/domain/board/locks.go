package board

import "sync"

// projectLocks serializes board mutations per project. A move's
// read-renumber-write must not interleave with another move on the same
// board; cross-project operations never touch the same rows and may
// proceed concurrently.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newProjectLocks() *projectLocks {
	return &projectLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the project's mutex and returns its unlock func.
func (l *projectLocks) acquire(projectID string) func() {
	l.mu.Lock()
	m, ok := l.locks[projectID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[projectID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
