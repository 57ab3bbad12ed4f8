package llm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sanchez0623/clswatch/pkg/domain"
)

// extraction patterns for the backend's free-text response. The backend is
// prompted into a format but not contractually bound to it, every field falls
// back to a stated default instead of failing the whole parse.
var (
	reScore         = regexp.MustCompile(`评分[：:]\s*(\d+)`)
	reMarketImpact  = regexp.MustCompile(`(?s)市场影响[：:]\s*(.+?)(?:\n|$|##)`)
	reAnalysis      = regexp.MustCompile(`(?s)分析[：:]\s*(.+?)(?:\n|$|##)`)
	reStockLine     = regexp.MustCompile(`-\s*([^:：\n]+)[：:]\s*(利好|利空)\s*(\d+)/10\s*\|\s*(.+?)(?:\n|$)`)
	reIndustryName  = regexp.MustCompile(`行业名称[：:]\s*(.+?)(?:\n|$)`)
	reDirection     = regexp.MustCompile(`影响方向[：:]\s*(利好|利空)`)
	reIndustryScore = regexp.MustCompile(`评分[：:]\s*(\d+)/10`)
	reLeaders       = regexp.MustCompile(`龙头股票[：:]\s*(.+?)(?:\n|$)`)
	reFirstPrin     = regexp.MustCompile(`(?s)第一性原理分析[：:]\s*(.+?)(?:\n\n|$)`)
	reLeaderSplit   = regexp.MustCompile(`[,，、]`)
)

const unknownIndustry = "未知行业"

// ParseResponse extracts a typed analysis result from the backend's raw text
// response. Individual missing or malformed sections use defaults; a hard
// error is returned only for input that is not usable text at all.
func ParseResponse(newsID, text string) (*domain.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty response text")
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("response is not valid utf-8 text")
	}

	// overall score, default 5, clamped
	score := 5
	if m := reScore.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			score = n
		}
	}
	score = domain.ClampScore(score)

	// the leading text carries the model's primary verdict, so the negative
	// marker is only honored within the first 100 characters
	head := domain.TruncateRunes(text, 100)
	isPositive := strings.Contains(text, "利好") && !strings.Contains(head, "利空")

	marketImpact := "暂无详细分析"
	if m := reMarketImpact.FindStringSubmatch(text); m != nil {
		marketImpact = domain.TruncateRunes(strings.TrimSpace(m[1]), 200)
	}

	analysis := domain.TruncateRunes(text, 200)
	if m := reAnalysis.FindStringSubmatch(text); m != nil {
		analysis = domain.TruncateRunes(strings.TrimSpace(m[1]), 200)
	}

	return &domain.AnalysisResult{
		NewsID:          newsID,
		Score:           score,
		Analysis:        analysis,
		IsPositive:      isPositive,
		MarketImpact:    marketImpact,
		StockRatings:    parseStockRatings(text),
		IndustryRatings: parseIndustryRatings(text),
		AnalyzedAt:      time.Now(),
	}, nil
}

// parseStockRatings scans for lines of the fixed pattern
// "- <name>: 利好/利空 <score>/10 | <reason>". A malformed line never aborts
// the scan of the remaining lines.
func parseStockRatings(text string) []domain.StockRating {
	var ratings []domain.StockRating
	for _, m := range reStockLine.FindAllStringSubmatch(text, -1) {
		score, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		ratings = append(ratings, domain.StockRating{
			StockName:  strings.TrimSpace(m[1]),
			IsPositive: m[2] == "利好",
			Score:      domain.ClampScore(score),
			Reason:     domain.TruncateRunes(strings.TrimSpace(m[4]), 100),
		})
	}
	return ratings
}

// parseIndustryRatings extracts at most one industry rating, the first block
// wins. Attempted only when a structural marker is present.
func parseIndustryRatings(text string) []domain.IndustryRating {
	if !strings.Contains(text, "行业评级") && !strings.Contains(text, "行业名称") {
		return nil
	}

	name := unknownIndustry
	if m := reIndustryName.FindStringSubmatch(text); m != nil {
		name = strings.TrimSpace(m[1])
	}
	if name == unknownIndustry || name == "" {
		return nil
	}

	isPositive := true
	if m := reDirection.FindStringSubmatch(text); m != nil {
		isPositive = m[1] == "利好"
	}

	// the industry score is searched from the first industry marker so the
	// overall score above it is not picked up
	score := 5
	segment := text
	if idx := strings.Index(text, "行业"); idx >= 0 {
		segment = text[idx:]
	}
	if m := reIndustryScore.FindStringSubmatch(segment); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			score = n
		}
	}

	var leaders []string
	if m := reLeaders.FindStringSubmatch(text); m != nil {
		for _, s := range reLeaderSplit.Split(m[1], -1) {
			if s = strings.TrimSpace(s); s != "" {
				leaders = append(leaders, s)
			}
		}
		if len(leaders) > 5 {
			leaders = leaders[:5]
		}
	}

	reason := "基于行业基本面分析"
	if m := reFirstPrin.FindStringSubmatch(text); m != nil {
		reason = domain.TruncateRunes(strings.TrimSpace(m[1]), 200)
	}

	return []domain.IndustryRating{{
		IndustryName: name,
		IsPositive:   isPositive,
		Score:        domain.ClampScore(score),
		LeaderStocks: leaders,
		Reason:       reason,
	}}
}
