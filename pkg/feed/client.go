package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Client fetches raw telegraph records from the signed CLS JSON endpoint.
// It owns transport-level concerns only: timeout, header rotation, envelope
// parsing. No retries here, that is the caller's policy.
type Client struct {
	endpoint  string
	app       string
	os        string
	sv        string
	client    *http.Client
	sanitizer *bluemonday.Policy
}

// NewClient creates a feed client for the given endpoint and app identity
func NewClient(endpoint, app, osTag, sv string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		app:      app,
		os:       osTag,
		sv:       sv,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// envelope is the upstream response wrapper, errno zero means success
type envelope struct {
	Errno  int    `json:"errno"`
	ErrMsg string `json:"errmsg"`
	Data   struct {
		RollData []RawRecord `json:"roll_data"`
	} `json:"data"`
}

// RawRecord is a single telegraph record as the upstream delivers it.
// Every field is optional, missing ones default to zero values.
type RawRecord struct {
	ID       flexString  `json:"id"`
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	Digest   string      `json:"digest"`
	CTime    int64       `json:"ctime"`
	Stocks   []namedItem `json:"stocks"`
	Subjects []namedItem `json:"subjects"`
}

// flexString accepts both JSON strings and numbers, the upstream is not
// consistent about the id type
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// namedItem accepts both {"name": "..."} objects and bare strings
type namedItem struct {
	Name string `json:"name"`
}

func (n *namedItem) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.Name = s
		return nil
	}
	type alias namedItem
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	n.Name = a.Name
	return nil
}

// Fetch retrieves up to count raw records published before lastTime (epoch
// seconds). The upstream returns them newest-first.
func (c *Client) Fetch(ctx context.Context, lastTime int64, count int) ([]RawRecord, error) {
	params := map[string]string{
		"app":       c.app,
		"os":        c.os,
		"sv":        c.sv,
		"rn":        strconv.Itoa(count),
		"last_time": strconv.FormatInt(lastTime, 10),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, SignedURL(c.endpoint, params), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch telegraph list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from feed", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode feed envelope: %w", err)
	}
	if env.Errno != 0 {
		return nil, fmt.Errorf("feed error %d: %s", env.Errno, env.ErrMsg)
	}
	if env.Data.RollData == nil {
		return nil, fmt.Errorf("feed returned no payload")
	}

	return env.Data.RollData, nil
}

// CleanText strips markup from upstream text fields, the feed occasionally
// embeds html in contents
func (c *Client) CleanText(s string) string {
	return html.UnescapeString(c.sanitizer.Sanitize(s))
}
