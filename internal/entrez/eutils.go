package entrez

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/fasta"
)

// SearchResult is the outcome of an ESearch call. QueryKey and WebEnv can
// be handed to later fetches when history is requested.
type SearchResult struct {
	Count    int
	IDs      []string
	QueryKey string
	WebEnv   string
}

// ESearch runs a term search against db and returns up to retmax IDs.
func (c *Client) ESearch(ctx context.Context, db, term string, retmax int) (*SearchResult, error) {
	if term == "" {
		return nil, fmt.Errorf("esearch: empty term")
	}
	if retmax <= 0 {
		retmax = 20
	}
	params := url.Values{}
	params.Set("db", db)
	params.Set("term", term)
	params.Set("retmax", strconv.Itoa(retmax))
	params.Set("retmode", "json")
	params.Set("usehistory", "y")
	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Result struct {
			Count    string   `json:"count"`
			IDList   []string `json:"idlist"`
			QueryKey string   `json:"querykey"`
			WebEnv   string   `json:"webenv"`
		} `json:"esearchresult"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("esearch: bad response: %w", err)
	}
	count, _ := strconv.Atoi(payload.Result.Count)
	return &SearchResult{
		Count:    count,
		IDs:      payload.Result.IDList,
		QueryKey: payload.Result.QueryKey,
		WebEnv:   payload.Result.WebEnv,
	}, nil
}

// EFetch retrieves records for ids from db in the requested rettype and
// retmode (text formats: fasta, gb, etc). Results are served from the
// attached cache when fresh.
func (c *Client) EFetch(ctx context.Context, db string, ids []string, rettype, retmode string) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("efetch: no ids given")
	}
	key := cacheKey(db, ids, rettype)
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
	}
	params := url.Values{}
	params.Set("db", db)
	params.Set("id", strings.Join(ids, ","))
	if rettype != "" {
		params.Set("rettype", rettype)
	}
	if retmode != "" {
		params.Set("retmode", retmode)
	}
	body, err := c.get(ctx, "efetch.fcgi", params)
	if err != nil {
		return "", err
	}
	text := string(body)
	if c.cache != nil {
		c.cache.Put(key, text)
	}
	return text, nil
}

// FetchFasta fetches ids from db as FASTA and parses them.
func (c *Client) FetchFasta(ctx context.Context, db string, ids []string) (*fasta.Set, error) {
	text, err := c.EFetch(ctx, db, ids, "fasta", "text")
	if err != nil {
		return nil, err
	}
	return fasta.Parse(strings.NewReader(text))
}

// LinkSet groups the IDs found in a target database for one link name.
type LinkSet struct {
	DBTo     string
	LinkName string
	IDs      []string
}

// ELink resolves records in dbfrom to linked records in db.
func (c *Client) ELink(ctx context.Context, dbfrom, db string, ids []string) ([]LinkSet, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("elink: no ids given")
	}
	params := url.Values{}
	params.Set("dbfrom", dbfrom)
	params.Set("db", db)
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")
	body, err := c.get(ctx, "elink.fcgi", params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		LinkSets []struct {
			LinkSetDBs []struct {
				DBTo     string   `json:"dbto"`
				LinkName string   `json:"linkname"`
				Links    []string `json:"links"`
			} `json:"linksetdbs"`
		} `json:"linksets"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("elink: bad response: %w", err)
	}
	var out []LinkSet
	for _, ls := range payload.LinkSets {
		for _, lsdb := range ls.LinkSetDBs {
			out = append(out, LinkSet{DBTo: lsdb.DBTo, LinkName: lsdb.LinkName, IDs: lsdb.Links})
		}
	}
	return out, nil
}

// DocSum is one document summary row from ESummary.
type DocSum struct {
	UID    string
	Title  string
	Fields map[string]any
}

// ESummary fetches document summaries for ids, in uid order.
func (c *Client) ESummary(ctx context.Context, db string, ids []string) ([]DocSum, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("esummary: no ids given")
	}
	params := url.Values{}
	params.Set("db", db)
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")
	body, err := c.get(ctx, "esummary.fcgi", params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("esummary: bad response: %w", err)
	}
	var uids []string
	if raw, ok := payload.Result["uids"]; ok {
		_ = json.Unmarshal(raw, &uids)
	}
	out := make([]DocSum, 0, len(uids))
	for _, uid := range uids {
		raw, ok := payload.Result[uid]
		if !ok {
			continue
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		ds := DocSum{UID: uid, Fields: fields}
		if title, ok := fields["title"].(string); ok {
			ds.Title = title
		}
		out = append(out, ds)
	}
	return out, nil
}

// EInfo lists the database names available through the E-utilities.
func (c *Client) EInfo(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("retmode", "json")
	body, err := c.get(ctx, "einfo.fcgi", params)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Result struct {
			DBList []string `json:"dblist"`
		} `json:"einforesult"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("einfo: bad response: %w", err)
	}
	return payload.Result.DBList, nil
}

func cacheKey(db string, ids []string, rettype string) string {
	return db + "|" + strings.Join(ids, ",") + "|" + rettype
}
