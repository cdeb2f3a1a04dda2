package entrez

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// newTestClient builds a client whose transport is the given function and
// whose throttle gap is zero so tests run fast.
func newTestClient(rt roundTripperFunc, opts ...Option) *Client {
	c := New(opts...)
	c.HTTPClient = &http.Client{Transport: rt}
	c.gap = 0
	c.APIKey = ""
	return c
}

func TestESearch(t *testing.T) {
	body := `{"esearchresult":{"count":"42","idlist":["11","22","33"],"querykey":"1","webenv":"WE1"}}`
	var gotURL string
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return textResponse(200, body), nil
	})
	res, err := c.ESearch(context.Background(), "nucleotide", "DRD4[Gene]", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 42 || len(res.IDs) != 3 || res.IDs[0] != "11" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.WebEnv != "WE1" || res.QueryKey != "1" {
		t.Fatalf("history fields not parsed: %+v", res)
	}
	if !strings.Contains(gotURL, "esearch.fcgi") || !strings.Contains(gotURL, "db=nucleotide") {
		t.Fatalf("unexpected request URL: %s", gotURL)
	}
}

func TestESearchEmptyTerm(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		t.Fatal("HTTP should not be called for an empty term")
		return nil, nil
	})
	if _, err := c.ESearch(context.Background(), "nucleotide", "", 5); err == nil {
		t.Fatal("expected error for empty term")
	}
}

func TestEFetchCached(t *testing.T) {
	fastaBody := ">NM_1 test\nATGC\n"
	calls := 0
	cache := NewCache(filepath.Join(t.TempDir(), "cache.json"), 0)
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		calls++
		return textResponse(200, fastaBody), nil
	}, WithCache(cache))

	got, err := c.EFetch(context.Background(), "nucleotide", []string{"NM_1"}, "fasta", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != fastaBody {
		t.Fatalf("unexpected body: %q", got)
	}

	// second call must be served from cache
	c.HTTPClient = &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		t.Fatal("HTTP should not be called on cached fetch")
		return nil, nil
	})}
	got2, err := c.EFetch(context.Background(), "nucleotide", []string{"NM_1"}, "fasta", "text")
	if err != nil {
		t.Fatalf("unexpected error on cached fetch: %v", err)
	}
	if got2 != fastaBody || calls != 1 {
		t.Fatalf("expected cache hit (calls=%d)", calls)
	}
}

func TestFetchFasta(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return textResponse(200, ">ACC1 desc\nATGC\nGGTT\n"), nil
	})
	set, err := c.FetchFasta(context.Background(), "nucleotide", []string{"ACC1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, ok := set.Lookup("ACC1")
	if !ok || rec.Sequence != "ATGCGGTT" {
		t.Fatalf("unexpected record: %+v (ok=%v)", rec, ok)
	}
}

func TestRetryHonorsRetryAfter(t *testing.T) {
	calls := 0
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			resp := textResponse(429, "")
			resp.Header.Set("Retry-After", "1")
			return resp, nil
		}
		return textResponse(200, "ok"), nil
	})
	start := time.Now()
	got, err := c.EFetch(context.Background(), "nucleotide", []string{"X"}, "fasta", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 2 {
		t.Fatalf("expected retry then success, got %q after %d calls", got, calls)
	}
	if time.Since(start) < time.Second {
		t.Fatalf("expected at least 1s wait due to Retry-After, elapsed %v", time.Since(start))
	}
}

func TestServerErrorIsFatal(t *testing.T) {
	calls := 0
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		calls++
		return textResponse(500, "boom"), nil
	})
	if _, err := c.EFetch(context.Background(), "nucleotide", []string{"X"}, "", ""); err == nil {
		t.Fatal("expected error on 500")
	}
	if calls != 1 {
		t.Fatalf("500 must not be retried, got %d calls", calls)
	}
}

func TestELink(t *testing.T) {
	body := `{"linksets":[{"dbfrom":"gene","linksetdbs":[{"dbto":"protein","linkname":"gene_protein","links":["5","6"]}]}]}`
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return textResponse(200, body), nil
	})
	links, err := c.ELink(context.Background(), "gene", "protein", []string{"1815"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 1 || links[0].DBTo != "protein" || len(links[0].IDs) != 2 {
		t.Fatalf("unexpected linksets: %+v", links)
	}
}

func TestESummary(t *testing.T) {
	body := `{"result":{"uids":["11","22"],"11":{"title":"first record","organism":"H. sapiens"},"22":{"title":"second record"}}}`
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return textResponse(200, body), nil
	})
	sums, err := c.ESummary(context.Background(), "nucleotide", []string{"11", "22"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sums) != 2 || sums[0].UID != "11" || sums[0].Title != "first record" {
		t.Fatalf("unexpected summaries: %+v", sums)
	}
	if org, ok := sums[0].Fields["organism"].(string); !ok || org != "H. sapiens" {
		t.Fatalf("extra fields not kept: %+v", sums[0].Fields)
	}
}

func TestEInfo(t *testing.T) {
	body := `{"einforesult":{"dblist":["pubmed","nucleotide","protein"]}}`
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return textResponse(200, body), nil
	})
	dbs, err := c.EInfo(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dbs) != 3 || dbs[1] != "nucleotide" {
		t.Fatalf("unexpected dblist: %v", dbs)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "cache.json"), 1)
	cache.load()
	cache.entries["old"] = cachedEntry{Body: "stale", RetrievedAt: time.Now().Unix() - 100}
	if v, ok := cache.Get("old"); ok || v != "" {
		t.Fatalf("expected expired entry to miss, got %q (ok=%v)", v, ok)
	}
}

func TestCachePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	NewCache(path, 0).Put("k", "v")
	if v, ok := NewCache(path, 0).Get("k"); !ok || v != "v" {
		t.Fatalf("expected persisted entry, got %q (ok=%v)", v, ok)
	}
}
