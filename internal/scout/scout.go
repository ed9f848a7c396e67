package scout

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/LJTian/TrendScout/internal/collector"
)

// NoteWriter 把一条 Story 落成文件，返回文件名
type NoteWriter interface {
	Write(s collector.Story) (string, error)
}

// Runner 串起一次完整的扫描：抓取 -> 逐条写笔记 -> 输出汇总
type Runner struct {
	fetcher collector.Fetcher
	writer  NoteWriter
	limit   int
	out     io.Writer
}

func New(fetcher collector.Fetcher, writer NoteWriter, limit int) *Runner {
	return &Runner{
		fetcher: fetcher,
		writer:  writer,
		limit:   limit,
		out:     os.Stdout,
	}
}

// SetOutput 替换进度与汇总的输出目标，默认 stdout
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

// RunOnce 执行一轮扫描并返回写入的笔记数。
// 每次都会重写所有命中的笔记（按 id 覆盖），不区分新旧；任一步出错立即返回，不打印汇总。
func (r *Runner) RunOnce(ctx context.Context) (int, error) {
	fmt.Fprintln(r.out, "Starting Trend Scout...")

	name := r.fetcher.Name()
	log.Printf("fetch from %s...", name)
	stories, err := r.fetcher.Fetch(ctx, r.limit)
	if err != nil {
		return 0, fmt.Errorf("scout: fetch %s: %w", name, err)
	}

	written := 0
	for _, s := range stories {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		file, err := r.writer.Write(s)
		if err != nil {
			return written, fmt.Errorf("scout: write note for item %d: %w", s.ID, err)
		}
		log.Printf("note written: %s", file)
		written++
	}

	// 条数 = 本轮命中并写入的笔记数（非“新增数”，已存在会覆盖）
	fmt.Fprintf(r.out, "Found %d new trending AI ideas.\n", written)
	return written, nil
}
