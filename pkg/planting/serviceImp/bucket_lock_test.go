package serviceImp

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBucketLocks_SerializesSameBucket(t *testing.T) {
	l := newBucketLocks()

	unlock := l.Lock(1, "2024A")
	acquired := make(chan struct{})
	go func() {
		u := l.Lock(1, "2024A")
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder entered a locked bucket")
	case <-time.After(50 * time.Millisecond):
	}
	unlock()
	<-acquired
	assert.Eventually(t, func() bool { return l.size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestBucketLocks_IndependentBuckets(t *testing.T) {
	l := newBucketLocks()

	a := l.Lock(1, "2024A")
	defer a()

	var wg sync.WaitGroup
	for _, k := range []struct {
		farm   uint
		season string
	}{{1, "2024B"}, {2, "2024A"}, {1, ""}} {
		wg.Add(1)
		go func(farm uint, season string) {
			defer wg.Done()
			l.Lock(farm, season)()
		}(k.farm, k.season)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("other buckets were blocked")
	}
	assert.Equal(t, 1, l.size())
}
