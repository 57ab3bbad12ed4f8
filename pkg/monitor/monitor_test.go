package monitor

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchez0623/clswatch/pkg/domain"
	"github.com/sanchez0623/clswatch/pkg/feed"
	"github.com/sanchez0623/clswatch/pkg/monitor/mocks"
)

func TestMonitor_RunAnalyzesNewItems(t *testing.T) {
	item := &domain.NewsItem{
		ID:        "100",
		Content:   "央行宣布降准",
		Published: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	var polls atomic.Int64
	poller := &mocks.PollerMock{
		PollFunc: func(ctx context.Context) *domain.NewsItem {
			// first poll yields the item, the rest are duplicates
			if polls.Add(1) == 1 {
				return item
			}
			return nil
		},
		StatsFunc: func() feed.Stats {
			return feed.Stats{Fetches: polls.Load(), NewItems: 1}
		},
	}

	analyzer := &mocks.AnalyzerMock{
		AnalyzeFunc: func(ctx context.Context, got *domain.NewsItem) *domain.AnalysisResult {
			return &domain.AnalysisResult{
				NewsID:       got.ID,
				Score:        8,
				Analysis:     "流动性宽松",
				IsPositive:   true,
				MarketImpact: "利好银行板块",
			}
		},
	}

	buf := &bytes.Buffer{}
	m := New(poller, analyzer, NewDisplay(buf), 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	m.Run(ctx)

	calls := analyzer.AnalyzeCalls()
	require.Len(t, calls, 1, "only the first poll produced a new item")
	assert.Equal(t, "100", calls[0].Item.ID)
	assert.GreaterOrEqual(t, len(poller.PollCalls()), 2, "polling continued after dedup")

	out := buf.String()
	assert.Contains(t, out, "央行宣布降准")
	assert.Contains(t, out, "★★★★★★★★☆☆")
	assert.Contains(t, out, "利好银行板块")
	assert.Contains(t, out, "运行统计", "shutdown stats printed on cancel")
}

func TestMonitor_RunCountsFailures(t *testing.T) {
	poller := &mocks.PollerMock{
		PollFunc: func(ctx context.Context) *domain.NewsItem {
			return &domain.NewsItem{ID: "7", Content: "test"}
		},
		StatsFunc: func() feed.Stats { return feed.Stats{} },
	}
	analyzer := &mocks.AnalyzerMock{
		AnalyzeFunc: func(ctx context.Context, item *domain.NewsItem) *domain.AnalysisResult {
			return nil
		},
	}

	m := New(poller, analyzer, NewDisplay(&bytes.Buffer{}), time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	m.Run(ctx)

	st := m.Status()
	assert.Equal(t, int64(0), st.Analyzed)
	assert.GreaterOrEqual(t, st.Failures, int64(1))
}

func TestMonitor_Status(t *testing.T) {
	poller := &mocks.PollerMock{
		PollFunc: func(ctx context.Context) *domain.NewsItem { return nil },
		StatsFunc: func() feed.Stats {
			return feed.Stats{Fetches: 12, NewItems: 3, Duplicates: 8, Errors: 1}
		},
	}
	analyzer := &mocks.AnalyzerMock{}

	m := New(poller, analyzer, NewDisplay(&bytes.Buffer{}), time.Second)
	m.started = time.Now().Add(-90 * time.Second)

	st := m.Status()
	assert.Equal(t, int64(12), st.Feed.Fetches)
	assert.Equal(t, int64(3), st.Feed.NewItems)
	assert.Equal(t, "1m30s", st.Uptime)
}

func TestDisplay_PrintResultSections(t *testing.T) {
	buf := &bytes.Buffer{}
	d := NewDisplay(buf)

	item := &domain.NewsItem{
		ID:        "42",
		Content:   "宁德时代发布新一代电池",
		Published: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Stocks:    []string{"宁德时代"},
		Subjects:  []string{"新能源"},
	}
	result := &domain.AnalysisResult{
		NewsID:       "42",
		Score:        9,
		Analysis:     "技术突破",
		IsPositive:   true,
		MarketImpact: "利好新能源板块",
		StockRatings: []domain.StockRating{
			{StockName: "宁德时代", IsPositive: true, Score: 9, Reason: "直接受益"},
		},
		IndustryRatings: []domain.IndustryRating{
			{IndustryName: "新能源", IsPositive: true, Score: 8, LeaderStocks: []string{"宁德时代", "比亚迪"}, Reason: "成本下降推动渗透率"},
		},
	}

	d.PrintResult(item, result)
	out := buf.String()

	assert.Contains(t, out, "2025-06-01 10:00:00")
	assert.Contains(t, out, "相关股票: 宁德时代")
	assert.Contains(t, out, "相关主题: 新能源")
	assert.Contains(t, out, "★★★★★★★★★☆")
	assert.Contains(t, out, "个股评级:")
	assert.Contains(t, out, "宁德时代: 利好 9/10 | 直接受益")
	assert.Contains(t, out, "行业评级:")
	assert.Contains(t, out, "龙头: 宁德时代, 比亚迪")
}

func TestDisplay_PrintResultNegative(t *testing.T) {
	buf := &bytes.Buffer{}
	d := NewDisplay(buf)

	item := &domain.NewsItem{ID: "1", Content: "监管处罚落地"}
	result := &domain.AnalysisResult{NewsID: "1", Score: 3, IsPositive: false, Analysis: "短期承压", MarketImpact: "利空相关板块"}

	d.PrintResult(item, result)
	out := buf.String()

	assert.Contains(t, out, "利空/中性")
	assert.Contains(t, out, "★★★☆☆☆☆☆☆☆")
	assert.NotContains(t, out, "个股评级:")
	assert.NotContains(t, out, "行业评级:")
}
