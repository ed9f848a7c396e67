package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const listCacheTTL = 5 * time.Minute

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Idea{}); err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if redisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("warn: redis ping failed: %v", err)
		}
	}

	return &Store{DB: db, Redis: rdb}, nil
}

func listCacheKey(status string) string {
	return fmt.Sprintf("ideas:list:%s", status)
}

// ListIdeas 按创建时间返回看板卡片，status 为空表示全部；结果在 Redis 缓存 5 分钟
func (s *Store) ListIdeas(ctx context.Context, status string) ([]Idea, error) {
	cacheKey := listCacheKey(status)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []Idea
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Printf("warn: redis get %s: %v", cacheKey, err)
		}
	}

	db := s.DB.WithContext(ctx).Model(&Idea{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var list []Idea
	if err := db.Order("created_at ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, listCacheTTL).Err()
		}
	}

	return list, nil
}

// SaveIdea 以 id 为幂等键写入卡片，已存在则整体覆盖（保留 created_at）
func (s *Store) SaveIdea(ctx context.Context, idea *Idea) error {
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "type", "date", "status", "notes", "score", "source", "url", "extra", "updated_at",
		}),
	}).Create(idea).Error
	if err != nil {
		return err
	}

	s.invalidateLists(ctx)
	return nil
}

// invalidateLists 按固定的 key 列表删除缓存，不做通配扫描
func (s *Store) invalidateLists(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	keys := make([]string, 0, len(Statuses)+1)
	keys = append(keys, listCacheKey(""))
	for _, st := range Statuses {
		keys = append(keys, listCacheKey(st))
	}
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("warn: redis invalidate idea lists: %v", err)
	}
}
