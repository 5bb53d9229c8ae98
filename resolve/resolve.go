// Package resolve implements the single-entity lookup: it reconciles a
// caller-supplied brand+name pair against the directory upstream and gates
// the result through the catalog.
package resolve

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/nitevelour/liveapi/catalog"
	"github.com/nitevelour/liveapi/classify"
	"github.com/nitevelour/liveapi/models"
	"github.com/nitevelour/liveapi/upstream"
)

// lookupLimit caps how many candidates each directory query returns.
const lookupLimit = "10"

// Resolution is the outcome of one lookup. A nil Performer with NotFound set
// covers both "upstream has no such entry" and "entry exists but is outside
// the catalog" — callers cannot tell the two apart.
type Resolution struct {
	Performer  models.Performer
	Live       bool
	NotFound   bool
	Diagnostic string
}

// Resolver runs lookups against the directory API.
type Resolver struct {
	client  *upstream.Client
	catalog *catalog.Catalog
}

// New builds a resolver over the given client and catalog.
func New(client *upstream.Client, cat *catalog.Catalog) *Resolver {
	return &Resolver{client: client, catalog: cat}
}

// Resolve tries a small fixed set of query variants against the directory,
// stopping at the first one that returns a decodable payload. Different
// directory deployments index names slightly differently, so the variants
// are a deliberate multi-attempt strategy, not error recovery; individual
// failures are swallowed until all variants are exhausted.
//
// allowRaw skips the catalog gate and returns whatever the directory found.
func (r *Resolver) Resolve(ctx context.Context, system, name string, allowRaw bool) *Resolution {
	nameClean := classify.CleanName(name)

	variants := []url.Values{
		{"system": {system}, "name": {name}, "limit": {lookupLimit}},
		{"system": {system}, "name": {nameClean}, "limit": {lookupLimit}},
		{"system": {system}, "search": {name}, "limit": {lookupLimit}},
	}

	var payload map[string]any
	var lastErr error
	for _, params := range variants {
		data, err := r.client.SearchDirectory(ctx, params)
		if err != nil {
			lastErr = err
			continue
		}
		if data != nil {
			payload = data
			break
		}
	}

	var list []models.Performer
	if payload != nil {
		list = upstream.RecordList(payload, "performers", "models", "items", "data")
	}

	pick := pickBest(list, name, nameClean)
	if pick == nil {
		res := &Resolution{NotFound: true}
		if lastErr != nil {
			res.Diagnostic = lastErr.Error()
			slog.Warn("directory lookup exhausted",
				slog.String("system", system),
				slog.String("name", name),
				slog.Any("error", lastErr),
			)
		}
		return res
	}

	if !allowRaw {
		if id := pick.ItemID(); id != "" && !r.catalog.Contains(id) {
			// Catalog mismatch reads the same as not-found on purpose.
			return &Resolution{NotFound: true}
		}
	}

	return &Resolution{Performer: pick, Live: classify.IsLiveLoose(pick)}
}

// pickBest prefers an exact cleaned-name match, then an exact raw-name match
// ignoring case, then the first candidate.
func pickBest(list []models.Performer, name, nameClean string) models.Performer {
	if nameClean != "" {
		for _, p := range list {
			if strings.ToLower(p.Str("nameClean")) == nameClean {
				return p
			}
		}
	}
	for _, p := range list {
		if p.Str("name") != "" && strings.EqualFold(p.Str("name"), name) {
			return p
		}
	}
	if len(list) > 0 {
		return list[0]
	}
	return nil
}
