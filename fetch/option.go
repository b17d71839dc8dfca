package fetch

import (
	"time"

	"github.com/mdrtools/cacheprimer/limiter"
	"github.com/mdrtools/cacheprimer/proxy"
)

type options struct {
	baseURL   string
	apiKey    string
	mediaType string
	timeout   time.Duration
	limit     limiter.RateLimiter
	proxy     proxy.Func
}

var defaultOptions = options{
	mediaType: "application/json",
	timeout:   30 * time.Second,
}

type Option func(opts *options)

func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

func WithAPIKey(apiKey string) Option {
	return func(opts *options) {
		opts.apiKey = apiKey
	}
}

func WithMediaType(mediaType string) Option {
	return func(opts *options) {
		opts.mediaType = mediaType
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(opts *options) {
		opts.timeout = timeout
	}
}

func WithLimit(limit limiter.RateLimiter) Option {
	return func(opts *options) {
		opts.limit = limit
	}
}

func WithProxy(p proxy.Func) Option {
	return func(opts *options) {
		opts.proxy = p
	}
}
