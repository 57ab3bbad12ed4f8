package feed

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/sanchez0623/clswatch/pkg/domain"
)

// Poller wraps the feed client and tracks the most recently seen item id.
// Poll returns at most one unseen item per call. A single goroutine drives
// the poll cycle, lastSeenID is never touched concurrently.
type Poller struct {
	client     Fetcher
	count      int
	lastSeenID string

	// counters are read by the status server while the poll loop writes them
	fetches    atomic.Int64
	newItems   atomic.Int64
	duplicates atomic.Int64
	errors     atomic.Int64
}

// Fetcher retrieves raw records from the feed
type Fetcher interface {
	Fetch(ctx context.Context, lastTime int64, count int) ([]RawRecord, error)
	CleanText(s string) string
}

// NewPoller creates a poller requesting count items per fetch
func NewPoller(client Fetcher, count int) *Poller {
	if count <= 0 {
		count = 1
	}
	return &Poller{client: client, count: count}
}

// Poll fetches the latest records and returns the newest unseen item, or nil
// when there is nothing new. Transport failures, an empty feed and a
// duplicate head item all collapse to nil, callers relying on the
// distinction must use logs or Stats.
func (p *Poller) Poll(ctx context.Context) *domain.NewsItem {
	p.fetches.Add(1)

	records, err := p.client.Fetch(ctx, time.Now().Unix(), p.count)
	if err != nil {
		p.errors.Add(1)
		log.Printf("[WARN] feed fetch failed: %v", err)
		return nil
	}

	if len(records) == 0 {
		log.Printf("[DEBUG] feed returned no records")
		return nil
	}

	// the feed is newest-first, only the head matters. Items that slipped in
	// between polls are not recovered.
	head := records[0]
	if string(head.ID) == p.lastSeenID {
		p.duplicates.Add(1)
		log.Printf("[DEBUG] duplicate item %s, skipping", head.ID)
		return nil
	}
	p.lastSeenID = string(head.ID)
	p.newItems.Add(1)

	return p.makeItem(head)
}

// makeItem converts a raw record into a NewsItem. Missing optional fields
// produce zero values, construction never fails.
func (p *Poller) makeItem(rec RawRecord) *domain.NewsItem {
	content := rec.Content
	if content == "" {
		content = rec.Digest
	}

	item := &domain.NewsItem{
		ID:      string(rec.ID),
		Title:   p.client.CleanText(rec.Title),
		Content: p.client.CleanText(content),
	}
	if rec.CTime > 0 {
		item.Published = time.Unix(rec.CTime, 0)
	}
	for _, s := range rec.Stocks {
		if s.Name != "" {
			item.Stocks = append(item.Stocks, s.Name)
		}
	}
	for _, s := range rec.Subjects {
		if s.Name != "" {
			item.Subjects = append(item.Subjects, s.Name)
		}
	}
	return item
}

// Stats is a snapshot of poller counters
type Stats struct {
	Fetches    int64 `json:"fetches"`
	NewItems   int64 `json:"new_items"`
	Duplicates int64 `json:"duplicates"`
	Errors     int64 `json:"errors"`
}

// Stats returns current counter values
func (p *Poller) Stats() Stats {
	return Stats{
		Fetches:    p.fetches.Load(),
		NewItems:   p.newItems.Load(),
		Duplicates: p.duplicates.Load(),
		Errors:     p.errors.Load(),
	}
}
