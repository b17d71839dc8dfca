package proxy

import (
	"fmt"
	"net/http"
	"net/url"
	"sync/atomic"
)

type Func func(*http.Request) (*url.URL, error)

// RoundRobin cycles requests through the given proxy URLs.
func RoundRobin(proxyURLs ...string) (Func, error) {
	if len(proxyURLs) == 0 {
		return nil, fmt.Errorf("proxy URL list empty")
	}
	urls := make([]*url.URL, len(proxyURLs))
	for i, raw := range proxyURLs {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url %q: %w", raw, err)
		}
		urls[i] = u
	}
	r := &roundRobinSwitcher{proxyURLs: urls}
	return r.next, nil
}

type roundRobinSwitcher struct {
	proxyURLs []*url.URL
	index     uint32
}

func (r *roundRobinSwitcher) next(_ *http.Request) (*url.URL, error) {
	index := atomic.AddUint32(&r.index, 1) - 1
	return r.proxyURLs[index%uint32(len(r.proxyURLs))], nil
}
