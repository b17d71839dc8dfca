package frontier

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushDeduplicates(t *testing.T) {
	f := New()

	assert.True(t, f.Push("/a"))
	assert.False(t, f.Push("/a"), "already pending")

	link, ok := f.Next()
	require.True(t, ok)
	assert.Equal(t, "/a", link)
	assert.False(t, f.Push("/a"), "in flight")

	f.Done("/a")
	assert.False(t, f.Push("/a"), "visited")
	assert.True(t, f.HasVisited("/a"))
}

func TestNextDrains(t *testing.T) {
	f := New()
	f.Push("/a")

	link, ok := f.Next()
	require.True(t, ok)
	f.Done(link)

	_, ok = f.Next()
	assert.False(t, ok)
	assert.Equal(t, []string{"/a"}, f.Visited())
}

func TestMergeVisitedSkipsSeed(t *testing.T) {
	f := New()
	f.Push("/a")
	f.MergeVisited([]string{"/a", "/b"})

	assert.Equal(t, 0, f.PendingLen())
	_, ok := f.Next()
	assert.False(t, ok)
	assert.Equal(t, []string{"/a", "/b"}, f.Visited())
}

func TestDoneUnblocksWaiters(t *testing.T) {
	f := New()
	f.Push("/a")

	link, ok := f.Next()
	require.True(t, ok)

	got := make(chan string, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// blocks until /a completes and pushes /b, or the frontier drains
		if l, ok := f.Next(); ok {
			got <- l
			f.Done(l)
		}
	}()

	f.Push("/b")
	f.Done(link)
	wg.Wait()

	select {
	case l := <-got:
		assert.Equal(t, "/b", l)
	default:
		t.Fatal("waiter did not receive pushed link")
	}
}

// Concurrent workers never pull the same link twice.
func TestAtMostOnceUnderConcurrency(t *testing.T) {
	f := New()
	for _, l := range []string{"/a", "/b", "/c", "/d", "/e"} {
		f.Push(l)
	}

	var mu sync.Mutex
	counts := map[string]int{}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				link, ok := f.Next()
				if !ok {
					return
				}
				mu.Lock()
				counts[link]++
				mu.Unlock()
				// rediscovery from another parent must be a no-op
				f.Push(link)
				f.Done(link)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, counts, 5)
	for link, n := range counts {
		assert.Equal(t, 1, n, link)
	}
}
