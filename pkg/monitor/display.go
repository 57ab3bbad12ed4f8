package monitor

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/sanchez0623/clswatch/pkg/domain"
)

// Display renders news items and their analysis to the console
type Display struct {
	out io.Writer
}

// NewDisplay creates a display writing to out
func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

const separator = "============================================================"

// PrintResult renders one analyzed news item
func (d *Display) PrintResult(item *domain.NewsItem, result *domain.AnalysisResult) {
	header := color.New(color.FgCyan, color.Bold)
	positive := color.New(color.FgRed)  // red is up in the A-share convention
	negative := color.New(color.FgGreen)

	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, separator)
	header.Fprintf(d.out, "新闻快讯 | %s\n", item.DisplayTime())
	fmt.Fprintln(d.out, separator)
	fmt.Fprintf(d.out, "内容: %s\n", item.Content)

	if len(item.Stocks) > 0 {
		fmt.Fprintf(d.out, "相关股票: %s\n", strings.Join(item.Stocks, ", "))
	}
	if len(item.Subjects) > 0 {
		fmt.Fprintf(d.out, "相关主题: %s\n", strings.Join(item.Subjects, ", "))
	}

	fmt.Fprintln(d.out, separator)
	fmt.Fprintf(d.out, "市场热度: %s (%d/10)\n", scoreBar(result.Score), result.Score)

	sentiment := positive
	sentimentText := "利好"
	if !result.IsPositive {
		sentiment = negative
		sentimentText = "利空/中性"
	}
	sentiment.Fprintf(d.out, "市场影响: %s\n", sentimentText)
	fmt.Fprintf(d.out, "分析: %s\n", result.Analysis)
	fmt.Fprintf(d.out, "影响描述: %s\n", result.MarketImpact)

	if len(result.StockRatings) > 0 {
		fmt.Fprintln(d.out, "个股评级:")
		for _, r := range result.StockRatings {
			direction := "利好"
			if !r.IsPositive {
				direction = "利空"
			}
			fmt.Fprintf(d.out, "  - %s: %s %d/10 | %s\n", r.StockName, direction, r.Score, r.Reason)
		}
	}

	if len(result.IndustryRatings) > 0 {
		fmt.Fprintln(d.out, "行业评级:")
		for _, r := range result.IndustryRatings {
			direction := "利好"
			if !r.IsPositive {
				direction = "利空"
			}
			fmt.Fprintf(d.out, "  - %s: %s %d/10 | 龙头: %s\n", r.IndustryName, direction, r.Score, strings.Join(r.LeaderStocks, ", "))
			fmt.Fprintf(d.out, "    %s\n", r.Reason)
		}
	}

	fmt.Fprintln(d.out, separator)
}

// PrintStats renders the final run statistics
func (d *Display) PrintStats(status Status) {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "运行统计:")
	fmt.Fprintf(d.out, "  运行时长: %s\n", status.Uptime)
	fmt.Fprintf(d.out, "  总请求次数: %d\n", status.Feed.Fetches)
	fmt.Fprintf(d.out, "  新消息数量: %d\n", status.Feed.NewItems)
	fmt.Fprintf(d.out, "  重复消息数量: %d\n", status.Feed.Duplicates)
	fmt.Fprintf(d.out, "  错误次数: %d\n", status.Feed.Errors)
	fmt.Fprintf(d.out, "  完成分析: %d\n", status.Analyzed)
}

// scoreBar renders a 10-segment star bar for a 1-10 score
func scoreBar(score int) string {
	score = domain.ClampScore(score)
	return strings.Repeat("★", score) + strings.Repeat("☆", 10-score)
}
