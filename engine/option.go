package engine

import (
	"github.com/mdrtools/cacheprimer/fetch"
	"github.com/mdrtools/cacheprimer/filter"
	"github.com/mdrtools/cacheprimer/hateoas"
	"github.com/mdrtools/cacheprimer/normalize"
	"github.com/mdrtools/cacheprimer/store"
	"go.uber.org/zap"
)

type options struct {
	Logger     *zap.Logger
	Fetcher    fetch.Fetcher
	Filters    *filter.Engine
	Correction hateoas.Correction
	Normalizer *normalize.Normalizer
	Store      store.VisitedStore
	Resource   string
	LinkKey    string
	WorkCount  int
	Verbose    bool
}

var defaultOptions = options{
	Logger:     zap.NewNop(),
	Correction: hateoas.NewCodelists(),
	LinkKey:    "href",
	WorkCount:  1,
}

type Option func(opt *options)

func WithLogger(logger *zap.Logger) Option {
	return func(opt *options) {
		opt.Logger = logger
	}
}

func WithFetcher(fetcher fetch.Fetcher) Option {
	return func(opt *options) {
		opt.Fetcher = fetcher
	}
}

func WithFilters(filters *filter.Engine) Option {
	return func(opt *options) {
		opt.Filters = filters
	}
}

func WithCorrection(correction hateoas.Correction) Option {
	return func(opt *options) {
		opt.Correction = correction
	}
}

func WithNormalizer(normalizer *normalize.Normalizer) Option {
	return func(opt *options) {
		opt.Normalizer = normalizer
	}
}

func WithStore(s store.VisitedStore) Option {
	return func(opt *options) {
		opt.Store = s
	}
}

func WithResource(resource string) Option {
	return func(opt *options) {
		opt.Resource = resource
	}
}

func WithLinkKey(linkKey string) Option {
	return func(opt *options) {
		opt.LinkKey = linkKey
	}
}

func WithWorkCount(workCount int) Option {
	return func(opt *options) {
		opt.WorkCount = workCount
	}
}

func WithVerbose(verbose bool) Option {
	return func(opt *options) {
		opt.Verbose = verbose
	}
}
