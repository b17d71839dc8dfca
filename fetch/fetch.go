// Package fetch retrieves hypermedia API resources over HTTP.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Fetcher issues a GET for a pending link. The status code is reported
// separately from transport errors so the caller can treat a non-200 response
// as a recoverable, per-link condition.
type Fetcher interface {
	Get(ctx context.Context, link string) (body []byte, status int, err error)
}

// LibraryFetch fetches base URL + link with the configured Accept media type
// and API key header.
type LibraryFetch struct {
	options
	client *http.Client
}

func NewLibraryFetch(opts ...Option) *LibraryFetch {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	f := &LibraryFetch{options: options}
	f.client = &http.Client{Timeout: f.timeout}
	if f.proxy != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = f.proxy
		f.client.Transport = transport
	}
	return f
}

func (f *LibraryFetch) Get(ctx context.Context, link string) ([]byte, int, error) {
	if f.limit != nil {
		if err := f.limit.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+link, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request for %s: %w", link, err)
	}
	req.Header.Set("Accept", f.mediaType)
	req.Header.Set("api-key", f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("get %s: %w", link, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	bodyReader := bufio.NewReader(resp.Body)
	e := determineEncoding(bodyReader)
	utf8Reader := transform.NewReader(bodyReader, e.NewDecoder())
	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read %s: %w", link, err)
	}

	return body, resp.StatusCode, nil
}

func determineEncoding(r *bufio.Reader) encoding.Encoding {
	peek, err := r.Peek(1024)
	if err != nil && len(peek) == 0 {
		return unicode.UTF8
	}
	e, _, _ := charset.DetermineEncoding(peek, "")
	return e
}
