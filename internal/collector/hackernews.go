package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/LJTian/TrendScout/internal/processor"
)

const (
	HNBaseURL = "https://hacker-news.firebaseio.com/v0"
	// HNDiscussionURL 是条目没有外链时使用的讨论页地址
	HNDiscussionURL = "https://news.ycombinator.com/item?id=%d"

	hnMaxResponseBytes = 1 << 20 // 1MB
	hnConcurrency      = 10
	hnClientTimeout    = 10 * time.Second
	hnUserAgent        = "TrendScout/1.0"
)

// HackerNewsFetcher 通过官方 Firebase API 抓取 Hacker News 热门故事，并按关键词过滤标题
type HackerNewsFetcher struct {
	BaseURL string
	Client  *http.Client
	// Filter 为 nil 时保留所有有标题的条目
	Filter *processor.KeywordFilter
	// Concurrency 控制详情请求的并发数，1 即严格串行
	Concurrency int
}

func NewHackerNewsFetcher(filter *processor.KeywordFilter) *HackerNewsFetcher {
	return &HackerNewsFetcher{
		BaseURL:     HNBaseURL,
		Client:      &http.Client{Timeout: hnClientTimeout},
		Filter:      filter,
		Concurrency: hnConcurrency,
	}
}

func (h *HackerNewsFetcher) Name() string {
	return "hackernews_top"
}

type hnItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Score *int   `json:"score"`
	Type  string `json:"type"`
}

// Fetch 拉取榜单前 limit 个 id 的详情，返回标题命中关键词的条目，顺序与榜单一致。
// 任意一次请求失败（网络、非 200、JSON 异常）都会让整次抓取失败，不返回部分结果。
func (h *HackerNewsFetcher) Fetch(ctx context.Context, limit int) ([]Story, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("hackernews: limit must be positive, got %d", limit)
	}

	log.Println("fetch Hacker News Top Stories...")

	var ids []int
	if err := h.getJSON(ctx, h.baseURL()+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("hackernews: fetch top stories: %w", err)
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	// 按下标写回，并发完成后顺序自然恢复为榜单顺序
	items := make([]*hnItem, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var it *hnItem
			if err := h.getJSON(gctx, fmt.Sprintf("%s/item/%d.json", h.baseURL(), id), &it); err != nil {
				return fmt.Errorf("hackernews: fetch item %d: %w", id, err)
			}
			items[i] = it
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stories := make([]Story, 0, len(items))
	for i, it := range items {
		story, ok := h.toStory(ids[i], it)
		if !ok {
			continue
		}
		stories = append(stories, story)
	}

	log.Printf("hackernews: scanned=%d matched=%d", len(ids), len(stories))
	return stories, nil
}

// toStory 把详情记录转成 Story；没有标题或未命中关键词时返回 false
func (h *HackerNewsFetcher) toStory(id int, it *hnItem) (Story, bool) {
	// 已删除的条目接口会直接返回 null
	if it == nil {
		return Story{}, false
	}
	title := processor.NormalizeTitle(it.Title)
	if title == "" {
		return Story{}, false
	}
	if h.Filter != nil && !h.Filter.Match(title) {
		return Story{}, false
	}

	itemURL := it.URL
	if itemURL == "" {
		itemURL = DiscussionURL(id)
	}

	return Story{
		ID:    id,
		Title: title,
		URL:   itemURL,
		Score: it.Score,
	}, true
}

// DiscussionURL 返回条目在 news.ycombinator.com 上的讨论页
func DiscussionURL(id int) string {
	return fmt.Sprintf(HNDiscussionURL, id)
}

func (h *HackerNewsFetcher) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", hnUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, hnMaxResponseBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

func (h *HackerNewsFetcher) baseURL() string {
	if h.BaseURL == "" {
		return HNBaseURL
	}
	return h.BaseURL
}

func (h *HackerNewsFetcher) client() *http.Client {
	if h.Client == nil {
		return &http.Client{Timeout: hnClientTimeout}
	}
	return h.Client
}

func (h *HackerNewsFetcher) concurrency() int {
	if h.Concurrency <= 0 {
		return hnConcurrency
	}
	return h.Concurrency
}
