package llm

import (
	"fmt"
	"strings"

	"github.com/sanchez0623/clswatch/pkg/domain"
)

// BuildPrompt converts a news item into the analysis request sent to the
// backend. Always asks for the overall 1-10 heat score, polarity, rationale
// and market impact with a fixed scoring rubric. Appends a per-stock rating
// section when the item names specific stocks and an industry section when it
// is an industry-level event; the two sections are independent.
func BuildPrompt(item *domain.NewsItem) string {
	stocksStr := "无"
	if len(item.Stocks) > 0 {
		stocksStr = strings.Join(item.Stocks, ", ")
	}
	subjectsStr := "无"
	if len(item.Subjects) > 0 {
		subjectsStr = strings.Join(item.Subjects, ", ")
	}

	var sb strings.Builder
	sb.WriteString("请分析以下财经新闻的市场影响，并给出详细评估。\n\n")
	sb.WriteString("## 新闻内容\n")
	sb.WriteString(item.Content)
	sb.WriteString("\n\n## 相关信息\n")
	sb.WriteString(fmt.Sprintf("- 相关股票：%s\n", stocksStr))
	sb.WriteString(fmt.Sprintf("- 相关主题：%s\n", subjectsStr))
	sb.WriteString(fmt.Sprintf("- 发布时间：%s\n", item.DisplayTime()))
	sb.WriteString("\n## 整体评估\n")
	sb.WriteString("请给出：\n")
	sb.WriteString("- 评分：1-10分的市场热度评分（10分为最高）\n")
	sb.WriteString("- 影响：利好/利空/中性\n")
	sb.WriteString("- 分析：简短分析（不超过100字）\n")
	sb.WriteString("- 市场影响：对市场的具体影响描述\n")

	if item.HasSpecificStocks() {
		sb.WriteString("\n## 个股影响分析\n")
		sb.WriteString(fmt.Sprintf("由于新闻涉及具体个股 (%s)，请针对每只股票分析：\n", stocksStr))
		sb.WriteString("- 股票名称\n")
		sb.WriteString("- 影响方向：利好 或 利空\n")
		sb.WriteString("- 评分：1-10分（10分为极大影响）\n")
		sb.WriteString("- 原因：简短说明（不超过50字）\n\n")
		sb.WriteString("格式：\n个股评级：\n")
		sb.WriteString("- [股票名称]: [利好/利空] [分数]/10 | [原因]\n")
	}

	if item.IsIndustryEvent() {
		sb.WriteString("\n## 行业影响分析（第一性原理）\n")
		sb.WriteString("请运用\"第一性原理\"思维，分析该事件对相关行业的本质影响：\n")
		sb.WriteString("1. 识别该事件涉及的核心行业\n")
		sb.WriteString("2. 从行业基本面出发，分析事件的本质影响\n")
		sb.WriteString("3. 找出该行业的龙头企业（最受益或最受影响的领头羊）\n")
		sb.WriteString("4. 给出行业评级\n\n")
		sb.WriteString("格式：\n行业评级：\n")
		sb.WriteString("- 行业名称: [行业名]\n")
		sb.WriteString("- 影响方向: [利好/利空]\n")
		sb.WriteString("- 评分: [分数]/10\n")
		sb.WriteString("- 龙头股票: [股票1, 股票2, ...]\n")
		sb.WriteString("- 第一性原理分析: [从本质出发的分析，不超过100字]\n")
	}

	sb.WriteString("\n## 评分标准\n")
	sb.WriteString("- 9-10分：重大政策变化、行业突破性进展、重要经济数据\n")
	sb.WriteString("- 7-8分：较大影响的行业新闻、重要企业事件\n")
	sb.WriteString("- 5-6分：普通行业新闻、一般公司公告\n")
	sb.WriteString("- 3-4分：较小影响的新闻\n")
	sb.WriteString("- 1-2分：无实质性市场影响\n\n")
	sb.WriteString("请严格按照上述格式回复。\n")

	return sb.String()
}
