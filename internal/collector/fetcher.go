package collector

import "context"

// Story 是一次扫描里的单条候选内容，只在内存中存活到写完笔记为止
type Story struct {
	ID    int
	Title string
	// URL 一定有值：原文链接缺失时回退到讨论页
	URL string
	// Score 源数据没有该字段时为 nil
	Score *int
}

// Fetcher 抽象一个热门内容源
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, limit int) ([]Story, error)
}
