package inventory

import "sync"

// periodLocks exclusión mutua por periodo dentro del proceso. Las entradas se liberan
// cuando nadie más espera por la misma clave.
type periodLocks struct {
	mu    sync.Mutex
	locks map[int64]*periodLock
}

type periodLock struct {
	mu   sync.Mutex
	refs int
}

func newPeriodLocks() *periodLocks {
	return &periodLocks{locks: make(map[int64]*periodLock)}
}

// Lock bloquea la clave y devuelve la función de desbloqueo.
func (l *periodLocks) Lock(key int64) func() {
	l.mu.Lock()
	pl, ok := l.locks[key]
	if !ok {
		pl = &periodLock{}
		l.locks[key] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
