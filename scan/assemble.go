package scan

import "github.com/nitevelour/liveapi/models"

// Page is the assembled response window for one request.
type Page struct {
	Window       []models.Performer
	Total        int
	TopicApplied bool
}

// Assemble picks the pool to serve and slices the requested window out of
// it. With a topic and strictTopic the topic pool is served even when empty.
// Without strictTopic the topic pool is only served when it has a minimum
// yield; otherwise the topic degrades to advisory and the full pool is
// served, which beats returning a near-empty "relevant" page.
func Assemble(res *Result, crit Criteria) Page {
	pool := res.Served
	applied := false

	if crit.TopicRequested() {
		if crit.StrictTopic {
			pool = res.Topic
			applied = true
		} else if len(res.Topic) >= minTopicYield(crit.Size) {
			pool = res.Topic
			applied = true
		}
	}

	start := (crit.Page - 1) * crit.Size
	if start > len(pool) {
		start = len(pool)
	}
	end := start + crit.Size
	if end > len(pool) {
		end = len(pool)
	}

	window := pool[start:end]
	if len(window) == 0 {
		window = []models.Performer{}
	}

	return Page{Window: window, Total: len(pool), TopicApplied: applied}
}

// minTopicYield is max(4, min(size, 12)): the smallest topic pool worth
// serving exclusively for a given page size.
func minTopicYield(size int) int {
	n := size
	if n > 12 {
		n = 12
	}
	if n < 4 {
		n = 4
	}
	return n
}
