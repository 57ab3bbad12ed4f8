package domain

import "time"

// NewsItem represents a single telegraph item from the CLS feed.
// Constructed once per poll from a raw feed record and immutable afterwards.
type NewsItem struct {
	ID        string
	Title     string
	Content   string
	Published time.Time
	Subjects  []string // topic tags attached by the feed
	Stocks    []string // tradable entities named by the feed
}

// HasSpecificStocks reports whether the item names concrete tradable entities.
func (n *NewsItem) HasSpecificStocks() bool {
	return len(n.Stocks) > 0
}

// IsIndustryEvent reports whether the item should get an industry-level
// analysis: either it names no specific stocks or it carries subject tags.
func (n *NewsItem) IsIndustryEvent() bool {
	return len(n.Stocks) == 0 || len(n.Subjects) > 0
}

// DisplayTime formats the publish time for console output.
func (n *NewsItem) DisplayTime() string {
	return n.Published.Format("2006-01-02 15:04:05")
}

// StockRating is a per-entity impact rating extracted from an analysis.
type StockRating struct {
	StockName  string
	IsPositive bool
	Score      int // 1-10
	Reason     string
}

// IndustryRating is an industry-level impact rating with leader entities.
type IndustryRating struct {
	IndustryName string
	IsPositive   bool
	Score        int // 1-10
	LeaderStocks []string // capped at 5
	Reason       string
}

// AnalysisResult holds the complete sentiment assessment for one news item.
// Created exactly once per successfully analyzed item and never mutated.
type AnalysisResult struct {
	NewsID          string
	Score           int // 1-10 overall heat score
	Analysis        string
	IsPositive      bool
	MarketImpact    string
	StockRatings    []StockRating
	IndustryRatings []IndustryRating
	AnalyzedAt      time.Time
}

// ClampScore forces a score into the valid 1-10 range. Every numeric score in
// the model goes through this before it is stored.
func ClampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// TruncateRunes limits s to at most n runes. Rune-based so multi-byte
// Chinese text is never cut mid-character.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
