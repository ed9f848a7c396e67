package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LJTian/TrendScout/internal/config"
	"github.com/LJTian/TrendScout/internal/notes"
	"github.com/LJTian/TrendScout/internal/storage"
)

const maxIdeaBytes = 1 << 20

// IdeaStore 是看板接口依赖的存储能力，生产环境由 *storage.Store 实现
type IdeaStore interface {
	ListIdeas(ctx context.Context, status string) ([]storage.Idea, error)
	SaveIdea(ctx context.Context, idea *storage.Idea) error
}

type Server struct {
	store      IdeaStore
	ideasDir   string
	signalFile string
	now        func() time.Time
}

func NewServer(store IdeaStore, cfg *config.Config) *Server {
	return &Server{
		store:      store,
		ideasDir:   cfg.IdeasDir,
		signalFile: cfg.SignalFile,
		now:        time.Now,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	ideas := r.Group("/api")
	{
		ideas.GET("/ideas", s.listIdeas)
		ideas.POST("/ideas", s.saveIdea)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listIdeas(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !storage.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_status",
			"message": "status must be one of ideas, drafts, scheduled, posted",
		})
		return
	}

	items, err := s.store.ListIdeas(c.Request.Context(), status)
	if err != nil {
		log.Printf("list ideas error: %v", err)
		internalError(c)
		return
	}

	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, it.Payload())
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) saveIdea(c *gin.Context) {
	dec := json.NewDecoder(io.LimitReader(c.Request.Body, maxIdeaBytes))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	idea, err := storage.IdeaFromPayload(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// 前端没带 id 时用毫秒时间戳
	if idea.ID == 0 {
		idea.ID = s.now().UnixMilli()
	}

	if err := s.store.SaveIdea(c.Request.Context(), idea); err != nil {
		log.Printf("save idea %d error: %v", idea.ID, err)
		internalError(c)
		return
	}

	// 同步一份 markdown 到 second brain
	if s.ideasDir != "" {
		if _, err := notes.WriteIdea(s.ideasDir, toIdeaNote(idea)); err != nil {
			log.Printf("mirror idea %d error: %v", idea.ID, err)
			internalError(c)
			return
		}
	}

	// 信号文件只是提醒，写失败不影响保存结果
	if s.signalFile != "" {
		if err := os.WriteFile(s.signalFile, []byte("New Idea: "+idea.Title), 0o644); err != nil {
			log.Printf("warn: write signal file: %v", err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"idea":    idea.Payload(),
	})
}

func toIdeaNote(idea *storage.Idea) notes.IdeaNote {
	return notes.IdeaNote{
		ID:     idea.ID,
		Title:  idea.Title,
		Type:   idea.Type,
		Date:   idea.Date,
		Status: idea.Status,
		Notes:  idea.Notes,
	}
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "internal_error",
		"message": "internal server error",
	})
}
