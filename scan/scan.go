// Package scan implements the aggregation pipeline behind the listing
// endpoint: a bounded upstream page scan that deduplicates, filters, and
// accumulates the pools the result assembler slices pages from.
package scan

import (
	"context"
	"fmt"
	"strings"

	"github.com/nitevelour/liveapi/catalog"
	"github.com/nitevelour/liveapi/classify"
	"github.com/nitevelour/liveapi/models"
	"github.com/nitevelour/liveapi/upstream"
)

// minDesiredCollected is the floor on how many filtered records a scan tries
// to collect, independent of the requested window. Filtering attrition per
// upstream page is unpredictable, so scans over-collect.
const minDesiredCollected = 80

// Criteria is one request's immutable filter set.
type Criteria struct {
	Page        int
	Size        int
	Brands      []string
	Gender      classify.Gender
	Search      string
	Topic       string
	StrictTopic bool
	LiveOnly    bool
	Debug       bool
}

// TopicRequested reports whether the caller supplied a topic.
func (c Criteria) TopicRequested() bool {
	return strings.TrimSpace(c.Topic) != ""
}

// Result holds the request-scoped pools and counters produced by one scan.
// Every record in Served has passed catalog, dedup, live, gender, and name
// filtering; Topic is always a subset of Served, in the same order.
type Result struct {
	Served []models.Performer
	Topic  []models.Performer

	PagesFetched int
	ItemsSeen    int
	ItemsParsed  int
}

// Scanner drives the upstream fetcher across pages for one request at a
// time. It holds no mutable state of its own, so one scanner serves
// arbitrarily many concurrent requests.
type Scanner struct {
	client   *upstream.Client
	catalog  *catalog.Catalog
	maxPages int
	metrics  *upstream.Metrics
}

// New builds a scanner over the given client and catalog.
func New(client *upstream.Client, cat *catalog.Catalog, maxPages int, metrics *upstream.Metrics) *Scanner {
	if maxPages <= 0 {
		maxPages = 12
	}
	return &Scanner{client: client, catalog: cat, maxPages: maxPages, metrics: metrics}
}

// Run scans upstream pages in order until the served pool is comfortably
// larger than the requested window, the upstream runs dry, or the page
// ceiling is hit. Upstream pages mix brands and live status loosely, so a
// 1:1 yield can never be assumed; the ceiling keeps request latency bounded
// regardless.
//
// A fetch failure aborts the whole scan. Pages are fetched strictly
// sequentially because dedup and early termination depend on in-order
// accumulation.
func (s *Scanner) Run(ctx context.Context, crit Criteria) (*Result, error) {
	desired := crit.Page*crit.Size + crit.Size*2
	if desired < minDesiredCollected {
		desired = minDesiredCollected
	}

	res := &Result{}
	seen := make(map[string]struct{})
	topicRequested := crit.TopicRequested()

	for upPage := 1; upPage <= s.maxPages; upPage++ {
		items, err := s.client.FetchPage(ctx, crit.Brands, upPage, crit.LiveOnly)
		if err != nil {
			return nil, fmt.Errorf("scan upstream page %d: %w", upPage, err)
		}
		res.PagesFetched++
		res.ItemsSeen += len(items)
		s.metrics.IncPages()
		s.metrics.AddItems(len(items))

		if len(items) == 0 {
			break
		}

		for _, p := range items {
			id := p.ItemID()
			if id == "" {
				continue
			}
			if !s.catalog.Contains(id) {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			if crit.LiveOnly && !classify.IsLive(p) {
				continue
			}
			if !classify.MatchesGender(p, crit.Gender) {
				continue
			}
			if !classify.MatchesName(p, crit.Search) {
				continue
			}

			res.ItemsParsed++
			res.Served = append(res.Served, p)
			if topicRequested && classify.MatchesTopic(p, crit.Topic) {
				res.Topic = append(res.Topic, p)
			}

			if len(res.Served) >= desired {
				break
			}
		}

		if len(res.Served) >= desired {
			break
		}
	}

	s.metrics.ObservePoolLength(len(res.Served))
	return res, nil
}
