package game

import "sync"

// groupLocks serializes work per group id. Entries live only while held
// or awaited.
type groupLocks struct {
	mutex sync.Mutex
	locks map[int64]*groupLock
}

type groupLock struct {
	sync.Mutex
	refs int
}

func newGroupLocks() *groupLocks {
	return &groupLocks{locks: map[int64]*groupLock{}}
}

// Lock blocks until the group is free and returns its unlock function.
func (g *groupLocks) Lock(groupID int64) func() {
	g.mutex.Lock()
	l, ok := g.locks[groupID]
	if !ok {
		l = &groupLock{}
		g.locks[groupID] = l
	}
	l.refs++
	g.mutex.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		g.mutex.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.locks, groupID)
		}
		g.mutex.Unlock()
	}
}

func (g *groupLocks) size() int {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	return len(g.locks)
}
