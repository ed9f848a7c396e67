package processor

import (
	"strings"
)

// KeywordFilter 按关键词过滤标题：不区分大小写的子串匹配，命中任意一个即保留
type KeywordFilter struct {
	keywords []string
}

func NewKeywordFilter(keywords []string) *KeywordFilter {
	lowered := make([]string, 0, len(keywords))
	seen := make(map[string]struct{})

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		lowered = append(lowered, kw)
	}

	return &KeywordFilter{keywords: lowered}
}

// Match 判断标题是否包含任一关键词。
// 纯子串匹配，"AI" 也会命中 "Email"，与词表的既有行为保持一致。
func (f *KeywordFilter) Match(title string) bool {
	title = strings.ToLower(NormalizeTitle(title))
	if title == "" {
		return false
	}
	for _, kw := range f.keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// Keywords 返回去重、小写化后的词表
func (f *KeywordFilter) Keywords() []string {
	out := make([]string, len(f.keywords))
	copy(out, f.keywords)
	return out
}

// NormalizeTitle 去掉首尾空白；只有空白的标题视为没有标题
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}
