// Package frontier tracks the pending and visited link sets for a crawl run
// and guarantees at-most-once visitation.
package frontier

import (
	"sort"
	"sync"
)

// Frontier holds three disjoint sets: pending (discovered, not yet fetched),
// in flight (handed to a worker), and visited (fetch attempt completed,
// success or failure). A link enters pending once and only moves forward.
type Frontier struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pending  map[string]struct{}
	inflight map[string]struct{}
	visited  map[string]struct{}
}

func New() *Frontier {
	f := &Frontier{
		pending:  map[string]struct{}{},
		inflight: map[string]struct{}{},
		visited:  map[string]struct{}{},
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// MergeVisited preloads links visited by prior runs. Links already known stay
// where they are.
func (f *Frontier) MergeVisited(links []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, link := range links {
		if _, ok := f.pending[link]; ok {
			delete(f.pending, link)
		}
		f.visited[link] = struct{}{}
	}
}

// Push adds a link to the pending set unless it is already pending, in
// flight, or visited. Reports whether the link was accepted.
func (f *Frontier) Push(link string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.visited[link]; ok {
		return false
	}
	if _, ok := f.inflight[link]; ok {
		return false
	}
	if _, ok := f.pending[link]; ok {
		return false
	}
	f.pending[link] = struct{}{}
	f.cond.Broadcast()
	return true
}

// Next removes an arbitrary pending link and marks it in flight. It blocks
// while the pending set is empty but fetches are still in flight, since those
// may discover more links. It returns false only when the crawl has drained:
// nothing pending and nothing in flight.
func (f *Frontier) Next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.pending) == 0 && len(f.inflight) > 0 {
		f.cond.Wait()
	}
	if len(f.pending) == 0 {
		f.cond.Broadcast()
		return "", false
	}
	var link string
	for link = range f.pending {
		break
	}
	delete(f.pending, link)
	f.inflight[link] = struct{}{}
	return link, true
}

// Done records the fetch attempt for a link as complete, moving it to the
// visited set regardless of the fetch outcome.
func (f *Frontier) Done(link string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.inflight, link)
	f.visited[link] = struct{}{}
	f.cond.Broadcast()
}

func (f *Frontier) HasVisited(link string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.visited[link]
	return ok
}

// Visited returns the visited set, sorted for stable persistence and tests.
func (f *Frontier) Visited() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	links := make([]string, 0, len(f.visited))
	for link := range f.visited {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// PendingLen reports the number of links waiting to be fetched.
func (f *Frontier) PendingLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}
