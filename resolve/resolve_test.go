package resolve

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/nitevelour/liveapi/catalog"
	"github.com/nitevelour/liveapi/config"
	"github.com/nitevelour/liveapi/upstream"
)

const directoryURL = "https://directory.test/v2/performers"

func testResolver(t *testing.T, cat *catalog.Catalog, responder httpmock.Responder) *Resolver {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DirectoryURL = directoryURL
	cfg.APIKey = "key"

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", directoryURL, responder)

	client := upstream.NewClient(cfg, upstream.NewMetrics())
	client.WithTransport(transport)
	return New(client, cat)
}

func directoryPayload(records ...map[string]any) (*http.Response, error) {
	arr := make([]any, 0, len(records))
	for _, r := range records {
		arr = append(arr, r)
	}
	return httpmock.NewJsonResponse(200, map[string]any{"performers": arr})
}

func TestResolvePicksExactCleanName(t *testing.T) {
	r := testResolver(t, catalog.New([]string{"d-2"}), func(req *http.Request) (*http.Response, error) {
		return directoryPayload(
			map[string]any{"itemId": "d-1", "nameClean": "lolavegas", "name": "Lola Vegas"},
			map[string]any{"itemId": "d-2", "nameClean": "lolavega", "name": "Lola Vega", "live": true},
		)
	})

	res := r.Resolve(context.Background(), "stripchat", "Lola Vega!", false)
	if res.NotFound {
		t.Fatalf("unexpected notFound")
	}
	if got := res.Performer.ItemID(); got != "d-2" {
		t.Fatalf("picked %q, want exact clean-name match d-2", got)
	}
	if !res.Live {
		t.Fatalf("loose live detection should report live")
	}
}

func TestResolveFallsBackToRawNameThenFirst(t *testing.T) {
	r := testResolver(t, nil, func(req *http.Request) (*http.Response, error) {
		return directoryPayload(
			map[string]any{"itemId": "d-1", "name": "Someone Else"},
			map[string]any{"itemId": "d-2", "name": "LOLA VEGA"},
		)
	})

	res := r.Resolve(context.Background(), "stripchat", "lola vega", true)
	if res.NotFound || res.Performer.ItemID() != "d-2" {
		t.Fatalf("res = %+v, want raw-name match d-2", res)
	}

	// No name matches at all: first candidate wins.
	r = testResolver(t, nil, func(req *http.Request) (*http.Response, error) {
		return directoryPayload(
			map[string]any{"itemId": "d-9", "name": "Unrelated"},
		)
	})
	res = r.Resolve(context.Background(), "stripchat", "lola vega", true)
	if res.NotFound || res.Performer.ItemID() != "d-9" {
		t.Fatalf("res = %+v, want first-candidate fallback d-9", res)
	}
}

func TestResolveTriesNextVariantOnFailure(t *testing.T) {
	calls := 0
	r := testResolver(t, nil, func(req *http.Request) (*http.Response, error) {
		calls++
		if req.URL.Query().Get("name") == "Lola Vega" {
			// Exact-name variant fails; the cleaned variant must be tried.
			return httpmock.NewStringResponse(http.StatusBadGateway, "boom"), nil
		}
		return directoryPayload(map[string]any{"itemId": "d-1", "nameClean": "lolavega"})
	})

	res := r.Resolve(context.Background(), "stripchat", "Lola Vega", true)
	if res.NotFound {
		t.Fatalf("unexpected notFound after variant fallback")
	}
	if calls != 2 {
		t.Fatalf("directory calls = %d, want 2", calls)
	}
}

func TestResolveAllVariantsFail(t *testing.T) {
	r := testResolver(t, nil,
		httpmock.NewStringResponder(http.StatusServiceUnavailable, "down"))

	res := r.Resolve(context.Background(), "stripchat", "lola", false)
	if !res.NotFound {
		t.Fatalf("want notFound when every variant fails")
	}
	if res.Diagnostic == "" {
		t.Fatalf("want diagnostic from the last failed attempt")
	}
}

func TestResolveEmptyDirectory(t *testing.T) {
	r := testResolver(t, nil, httpmock.NewStringResponder(200, `{"performers": []}`))

	res := r.Resolve(context.Background(), "stripchat", "lola", false)
	if !res.NotFound {
		t.Fatalf("want notFound for empty directory result")
	}
	if res.Diagnostic != "" {
		t.Fatalf("no diagnostic expected on a clean empty result, got %q", res.Diagnostic)
	}
}

func TestResolveCatalogGate(t *testing.T) {
	responder := func(req *http.Request) (*http.Response, error) {
		return directoryPayload(map[string]any{"itemId": "outside", "nameClean": "lola"})
	}

	gated := testResolver(t, catalog.New([]string{"someone-else"}), responder)
	res := gated.Resolve(context.Background(), "stripchat", "lola", false)
	if !res.NotFound {
		t.Fatalf("catalog mismatch must read as notFound")
	}
	if res.Diagnostic != "" {
		t.Fatalf("catalog mismatch must be indistinguishable from notFound, got diagnostic %q", res.Diagnostic)
	}

	raw := testResolver(t, catalog.New([]string{"someone-else"}), responder)
	res = raw.Resolve(context.Background(), "stripchat", "lola", true)
	if res.NotFound || res.Performer.ItemID() != "outside" {
		t.Fatalf("raw mode must bypass the catalog gate, got %+v", res)
	}
}
