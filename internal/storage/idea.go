package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// 看板的四个列，顺序即流转顺序
const (
	StatusIdeas     = "ideas"
	StatusDrafts    = "drafts"
	StatusScheduled = "scheduled"
	StatusPosted    = "posted"
)

var Statuses = []string{StatusIdeas, StatusDrafts, StatusScheduled, StatusPosted}

func ValidStatus(s string) bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

// Idea 是看板上的一张卡片。前端可能带上任意额外字段，统一放进 Extra 原样回传
type Idea struct {
	ID     int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title  string `gorm:"size:512" json:"title"`
	Type   string `gorm:"size:64" json:"type"`
	Date   string `gorm:"size:32" json:"date"`
	Status string `gorm:"size:32;index" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`
	Score  *int   `json:"score"`
	Source string `gorm:"size:64" json:"source"`
	URL    string `gorm:"size:1024" json:"url"`

	Extra datatypes.JSONMap `gorm:"type:jsonb" json:"extra,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var knownFields = map[string]struct{}{
	"id": {}, "title": {}, "type": {}, "date": {}, "status": {},
	"notes": {}, "score": {}, "source": {}, "url": {},
}

// IdeaFromPayload 把前端提交的 JSON 对象转换为 Idea。
// payload 需用 json.Decoder.UseNumber 解码，数字字段才能保持精度。
// id 缺失或为 0 时保持 0，由调用方分配；status 为空时默认放进 ideas 列。
func IdeaFromPayload(payload map[string]any) (*Idea, error) {
	idea := &Idea{}

	id, err := int64Field(payload, "id")
	if err != nil {
		return nil, err
	}
	idea.ID = id

	strFields := map[string]*string{
		"title":  &idea.Title,
		"type":   &idea.Type,
		"date":   &idea.Date,
		"status": &idea.Status,
		"notes":  &idea.Notes,
		"source": &idea.Source,
		"url":    &idea.URL,
	}
	for key, dst := range strFields {
		v, err := stringField(payload, key)
		if err != nil {
			return nil, err
		}
		*dst = v
	}

	if raw, ok := payload["score"]; ok && raw != nil {
		score, err := int64Field(payload, "score")
		if err != nil {
			return nil, err
		}
		s := int(score)
		idea.Score = &s
	}

	if idea.Status == "" {
		idea.Status = StatusIdeas
	}
	if !ValidStatus(idea.Status) {
		return nil, fmt.Errorf("storage: unknown status %q", idea.Status)
	}

	for k, v := range payload {
		if _, ok := knownFields[k]; ok {
			continue
		}
		if idea.Extra == nil {
			idea.Extra = datatypes.JSONMap{}
		}
		idea.Extra[k] = v
	}

	return idea, nil
}

// Payload 返回前端看到的扁平 JSON 对象：额外字段与固定字段合并在同一层
func (i Idea) Payload() map[string]any {
	out := make(map[string]any, len(i.Extra)+len(knownFields))
	for k, v := range i.Extra {
		out[k] = v
	}
	out["id"] = i.ID
	out["title"] = i.Title
	out["type"] = i.Type
	out["date"] = i.Date
	out["status"] = i.Status
	out["notes"] = i.Notes
	if i.Score != nil {
		out["score"] = *i.Score
	}
	if i.Source != "" {
		out["source"] = i.Source
	}
	if i.URL != "" {
		out["url"] = i.URL
	}
	return out
}

func stringField(payload map[string]any, key string) (string, error) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("storage: field %q must be a string", key)
	}
	return s, nil
}

func int64Field(payload map[string]any, key string) (int64, error) {
	raw, ok := payload[key]
	if !ok || raw == nil {
		return 0, nil
	}
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("storage: field %q must be an integer: %w", key, err)
		}
		return n, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("storage: field %q must be an integer", key)
		}
		return int64(v), nil
	case string:
		if v == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("storage: field %q must be an integer: %w", key, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("storage: field %q must be an integer", key)
	}
}
