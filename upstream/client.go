// Package upstream implements the HTTP clients for the two third-party
// performer APIs: the paginated listing endpoint scanned by the aggregation
// pipeline and the directory endpoint used for single-entity lookups.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nitevelour/liveapi/config"
	"github.com/nitevelour/liveapi/models"
)

// maxBodySize caps how much of an upstream response body is read. Listing
// pages are around 100 records, so anything past this is upstream misbehaving.
const maxBodySize = 5 * 1024 * 1024

// Client talks to both upstream APIs. Safe for concurrent use.
type Client struct {
	cfg     *config.Config
	http    *http.Client
	metrics *Metrics
}

// NewClient builds a client with a tuned transport shared by all requests.
// Per-call deadlines come from context timeouts, not the http.Client.
func NewClient(cfg *config.Config, metrics *Metrics) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Transport: transport},
		metrics: metrics,
	}
}

// WithTransport swaps the underlying round tripper. Used by tests to inject
// mock responders.
func (c *Client) WithTransport(rt http.RoundTripper) {
	c.http = &http.Client{Transport: rt}
}

// FetchPage fetches one listing page. The upstream page size and sort order
// are fixed; brands and the live flag narrow the result server-side, but the
// upstream's notion of "live" is loose and callers re-filter locally.
//
// A missing or wrong-shaped record array degrades to an empty page rather
// than an error, to tolerate upstream schema drift. There is no retry: the
// scan terminates instead.
func (c *Client) FetchPage(ctx context.Context, brands []string, page int, liveOnly bool) ([]models.Performer, error) {
	u, err := url.Parse(c.cfg.PerformersURL)
	if err != nil {
		return nil, fmt.Errorf("parse performers url: %w", err)
	}
	q := u.Query()
	q.Set("token", c.cfg.Token)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(c.cfg.UpstreamPageSize))
	q.Set("sorting", "score")
	if len(brands) > 0 {
		q.Set("brands", strings.Join(brands, ","))
	}
	if liveOnly {
		q.Set("live", "true")
	}
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String(), c.cfg.FetchTimeout, "listing")
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Warn("undecodable listing payload", slog.Int("page", page), slog.Any("error", err))
		return nil, nil
	}
	return recordList(payload, "performers"), nil
}

// SearchDirectory issues one lookup against the directory API with the given
// query parameters. Unlike the listing endpoint the directory takes no token;
// auth is the API key header alone.
func (c *Client) SearchDirectory(ctx context.Context, params url.Values) (map[string]any, error) {
	base := strings.TrimRight(c.cfg.DirectoryURL, "/")
	body, err := c.get(ctx, base+"?"+params.Encode(), c.cfg.LookupTimeout, "directory")
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode directory payload: %w", err)
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, rawURL string, timeout time.Duration, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.APIKey != "" {
		req.Header.Set("X-Api-Key", c.cfg.APIKey)
	}

	start := time.Now()
	c.metrics.IncRequest(target)
	resp, err := c.http.Do(req)
	if err != nil {
		classified := classifyError(err, 0)
		c.metrics.IncError(errorTypeLabel(classified))
		return nil, classified
	}
	defer resp.Body.Close()
	c.metrics.ObserveDuration(time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		classified := classifyError(nil, resp.StatusCode)
		c.metrics.IncError(errorTypeLabel(classified))
		return nil, classified
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		classified := classifyError(err, 0)
		c.metrics.IncError(errorTypeLabel(classified))
		return nil, classified
	}
	return body, nil
}

// recordList extracts the record array under key, tolerating absence and
// non-record elements.
func recordList(payload map[string]any, key string) []models.Performer {
	arr, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	out := make([]models.Performer, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]any); ok {
			out = append(out, models.Performer(m))
		}
	}
	return out
}

// RecordList exposes record extraction for callers that receive a raw
// directory payload and need to probe several legacy key names.
func RecordList(payload map[string]any, keys ...string) []models.Performer {
	for _, key := range keys {
		if _, present := payload[key]; !present {
			continue
		}
		if list := recordList(payload, key); list != nil {
			return list
		}
	}
	return nil
}
