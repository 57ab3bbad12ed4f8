package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/sanchez0623/clswatch/pkg/domain"
)

// keyword lists for the deterministic fallback heuristic, used when no
// backend responds. Fixed sets, fully deterministic: this is the only part
// of the analysis guaranteed to be testable without a live backend.
var (
	positiveKeywords = []string{
		"增长", "上涨", "突破", "利好", "支持", "加速", "扩大",
		"创新", "盈利", "超预期", "回升", "反弹", "新高",
	}
	negativeKeywords = []string{
		"下跌", "下降", "亏损", "利空", "风险", "警告", "暴跌",
		"收缩", "萎缩", "不及预期", "暂停", "终止", "处罚",
	}
	highImpactKeywords = []string{
		"央行", "政策", "降息", "加息", "财政", "重大", "突发",
		"并购", "重组", "退市", "上市", "国务院", "发改委",
	}
)

// industryLeaders lists industries with their representative leader stocks.
// Ordered slice, not a map, so the emitted ratings are deterministic.
var industryLeaders = []struct {
	name    string
	leaders []string
}{
	{"新能源", []string{"宁德时代", "比亚迪", "隆基绿能"}},
	{"半导体", []string{"中芯国际", "韦尔股份", "北方华创"}},
	{"人工智能", []string{"科大讯飞", "商汤科技", "寒武纪"}},
	{"银行", []string{"工商银行", "建设银行", "招商银行"}},
	{"白酒", []string{"贵州茅台", "五粮液", "泸州老窖"}},
	{"医药", []string{"恒瑞医药", "药明康德", "迈瑞医疗"}},
	{"地产", []string{"万科A", "保利发展", "招商蛇口"}},
}

// FallbackScore produces a keyword-frequency based analysis with the same
// shape as the backend path. Pure and side-effect free.
func FallbackScore(item *domain.NewsItem) *domain.AnalysisResult {
	content := strings.ToLower(item.Content)

	positiveHits := countHits(content, positiveKeywords)
	negativeHits := countHits(content, negativeKeywords)
	impactHits := 2 * countHits(content, highImpactKeywords)

	isPositive := positiveHits > negativeHits
	score := domain.ClampScore(5 + positiveHits - negativeHits + impactHits)

	// every stock already attached to the item shares the computed rating
	var stockRatings []domain.StockRating
	for _, stock := range item.Stocks {
		reason := "影响中性"
		if positiveHits+negativeHits > 0 {
			reason = "基于关键词分析"
		}
		stockRatings = append(stockRatings, domain.StockRating{
			StockName:  stock,
			IsPositive: isPositive,
			Score:      score,
			Reason:     reason,
		})
	}

	// an industry rating for every fixed industry literally named in the text
	var industryRatings []domain.IndustryRating
	for _, ind := range industryLeaders {
		if !strings.Contains(content, ind.name) {
			continue
		}
		industryRatings = append(industryRatings, domain.IndustryRating{
			IndustryName: ind.name,
			IsPositive:   isPositive,
			Score:        score,
			LeaderStocks: ind.leaders,
			Reason:       fmt.Sprintf("基于第一性原理，%s行业的核心价值在于技术壁垒和市场份额", ind.name),
		})
	}

	var sentiment, marketImpact string
	switch {
	case isPositive:
		sentiment = "利好"
		marketImpact = "可能对相关板块形成正面刺激"
	case negativeHits > 0:
		sentiment = "利空"
		marketImpact = "可能对相关板块形成负面影响"
	default:
		sentiment = "中性"
		marketImpact = "影响有限"
	}

	analysis := "该新闻影响较为中性"
	if positiveHits+negativeHits > 0 {
		analysis = fmt.Sprintf("基于关键词分析，该新闻%s信号明显", sentiment)
	}

	return &domain.AnalysisResult{
		NewsID:          item.ID,
		Score:           score,
		Analysis:        analysis,
		IsPositive:      isPositive,
		MarketImpact:    marketImpact,
		StockRatings:    stockRatings,
		IndustryRatings: industryRatings,
		AnalyzedAt:      time.Now(),
	}
}

func countHits(content string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			hits++
		}
	}
	return hits
}
