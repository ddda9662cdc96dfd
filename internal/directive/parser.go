// Package directive 从 AI 完整回复中提取嵌入式指令。
//
// 远端模型按约定在纯文本里夹带两种标记：
//
//	[[GENERATE_IMAGE: <英文描述>]]
//	[[GAME_CARD: <JSON 对象>]]
//
// 每种标记只认第一个匹配；匹配范围之外的多余标记不做处理。
package directive

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
)

var (
	cardRe  = regexp.MustCompile(`\[\[GAME_CARD:\s*(\{.*?\})\s*\]\]`)
	imageRe = regexp.MustCompile(`\[\[GENERATE_IMAGE:\s*(.*?)\]\]`)
)

// Result 是一次解析的产物。CleanText 为剥离标记并 trim 后的展示文本。
// HasImage 标识是否出现图片指令。Card 为 nil 表示没有（或解析失败的）卡片。
type Result struct {
	CleanText   string
	ImagePrompt string
	HasImage    bool
	Card        *model.GameCard
}

// Parse 扫描定稿文本。卡片 JSON 解析失败时静默丢弃载荷，但标记照样剥离。
func Parse(text string) Result {
	res := Result{CleanText: text}

	if loc := cardRe.FindStringSubmatchIndex(res.CleanText); loc != nil {
		var card model.GameCard
		if err := json.Unmarshal([]byte(res.CleanText[loc[2]:loc[3]]), &card); err == nil {
			res.Card = &card
		}
		res.CleanText = stripSpan(res.CleanText, loc[0], loc[1])
	}

	if loc := imageRe.FindStringSubmatchIndex(res.CleanText); loc != nil {
		res.HasImage = true
		res.ImagePrompt = res.CleanText[loc[2]:loc[3]]
		res.CleanText = stripSpan(res.CleanText, loc[0], loc[1])
	}

	return res
}

// 只剥离首个匹配的区间，等价于按单次替换处理
func stripSpan(s string, start, end int) string {
	return strings.TrimSpace(s[:start] + s[end:])
}
