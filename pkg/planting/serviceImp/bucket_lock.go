package serviceImp

import (
	"fmt"
	"sync"
)

// bucketLocks hands out one mutex per (farm, season) and forgets it once the
// last holder releases it.
type bucketLocks struct {
	mu sync.Mutex
	m  map[string]*bucketLock
}

type bucketLock struct {
	sync.Mutex
	refs int
}

func newBucketLocks() *bucketLocks {
	return &bucketLocks{m: make(map[string]*bucketLock)}
}

func bucketKey(farmID uint, season string) string {
	return fmt.Sprintf("%d\x00%s", farmID, season)
}

// Lock blocks until the bucket is free and returns its release func.
func (l *bucketLocks) Lock(farmID uint, season string) (unlock func()) {
	key := bucketKey(farmID, season)

	l.mu.Lock()
	b, ok := l.m[key]
	if !ok {
		b = &bucketLock{}
		l.m[key] = b
	}
	b.refs++
	l.mu.Unlock()

	b.Lock()
	return func() {
		b.Unlock()
		l.mu.Lock()
		b.refs--
		if b.refs == 0 {
			delete(l.m, key)
		}
		l.mu.Unlock()
	}
}

func (l *bucketLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}
