// Package engine drives the crawl: pop a pending link, fetch it, discover
// admitted links in the response, and repeat until the frontier drains.
package engine

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/mdrtools/cacheprimer/extract"
	"github.com/mdrtools/cacheprimer/frontier"
	"go.uber.org/zap"
)

type Crawler struct {
	frontier *frontier.Frontier
	options
}

func NewCrawler(opts ...Option) (*Crawler, error) {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	c := &Crawler{frontier: frontier.New()}
	c.options = options
	switch {
	case c.Fetcher == nil:
		return nil, errors.New("crawler needs a fetcher")
	case c.Filters == nil:
		return nil, errors.New("crawler needs a filter engine")
	case c.Normalizer == nil:
		return nil, errors.New("crawler needs a normalizer")
	case c.Store == nil:
		return nil, errors.New("crawler needs a visited store")
	case c.Resource == "":
		return nil, errors.New("crawler needs a starting resource")
	}
	if c.WorkCount < 1 {
		c.WorkCount = 1
	}
	return c, nil
}

// Run seeds the frontier, drains it with WorkCount workers, and persists the
// visited set once on normal termination. A canceled context abandons the run
// without persisting, leaving any prior saved state untouched.
func (c *Crawler) Run(ctx context.Context) error {
	prior, err := c.Store.Load()
	if err != nil {
		c.Logger.Info("no previously visited links loaded", zap.Error(err))
	} else if len(prior) > 0 {
		c.Logger.Info("loaded previously visited links", zap.Int("count", len(prior)))
	} else {
		c.Logger.Info("no previously visited links loaded")
	}
	c.frontier.MergeVisited(prior)
	if !c.frontier.Push(c.Resource) {
		c.Logger.Info("starting resource already visited", zap.String("link", c.Resource))
	}

	var wg sync.WaitGroup
	for i := 0; i < c.WorkCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.work(ctx)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	visited := c.frontier.Visited()
	if err := c.Store.Save(visited); err != nil {
		return err
	}
	c.Logger.Info("crawl complete", zap.Int("visited", len(visited)))
	return nil
}

func (c *Crawler) work(ctx context.Context) {
	for {
		link, ok := c.frontier.Next()
		if !ok {
			return
		}
		if ctx.Err() != nil {
			c.frontier.Done(link)
			return
		}
		c.visit(ctx, link)
	}
}

func (c *Crawler) visit(ctx context.Context, link string) {
	// the attempt counts as visited whatever the outcome; holding the
	// in-flight mark until discovered links are pushed keeps idle workers
	// from seeing a momentarily drained frontier
	defer c.frontier.Done(link)

	start := time.Now()
	c.Logger.Info("requested", zap.String("link", link))
	body, status, err := c.Fetcher.Get(ctx, link)
	if err != nil {
		c.Logger.Error("fetch failed", zap.String("link", link), zap.Error(err))
		return
	}
	if status != http.StatusOK {
		c.Logger.Error("fetch error status", zap.String("link", link), zap.Int("status", status))
		return
	}
	c.Logger.Info("received",
		zap.String("link", link),
		zap.Duration("elapsed", time.Since(start)),
	)

	tree, err := c.Normalizer.Tree(body)
	if err != nil {
		c.Logger.Error("normalize failed", zap.String("link", link), zap.Error(err))
		return
	}
	for _, found := range extract.Links(tree, c.LinkKey) {
		candidates := []string{found}
		if derived, ok := c.Correction.Derive(found); ok {
			candidates = append(candidates, derived)
		}
		for _, candidate := range candidates {
			if c.Filters.Admit(candidate) {
				c.frontier.Push(candidate)
			} else if c.Verbose {
				c.Logger.Info("skipping", zap.String("link", candidate))
			}
		}
	}
}

// Visited exposes the current visited set, sorted.
func (c *Crawler) Visited() []string {
	return c.frontier.Visited()
}
