package storage

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePayload(t *testing.T, body string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var m map[string]any
	require.NoError(t, dec.Decode(&m))
	return m
}

func TestIdeaFromPayloadKnownAndExtraFields(t *testing.T) {
	p := decodePayload(t, `{
		"id": 1760000000123,
		"title": "Nvidia ships new chip",
		"type": "thread",
		"date": "2026-10-19",
		"status": "drafts",
		"notes": "angle: supply chain",
		"score": 80,
		"source": "hn",
		"url": "http://x",
		"pinned": true
	}`)

	idea, err := IdeaFromPayload(p)
	require.NoError(t, err)
	assert.Equal(t, int64(1760000000123), idea.ID)
	assert.Equal(t, "Nvidia ships new chip", idea.Title)
	assert.Equal(t, StatusDrafts, idea.Status)
	require.NotNil(t, idea.Score)
	assert.Equal(t, 80, *idea.Score)
	assert.Equal(t, "hn", idea.Source)
	assert.Equal(t, true, idea.Extra["pinned"])
	assert.NotContains(t, idea.Extra, "title")
}

func TestIdeaFromPayloadDefaults(t *testing.T) {
	idea, err := IdeaFromPayload(decodePayload(t, `{"title":"untitled thought"}`))
	require.NoError(t, err)
	assert.Zero(t, idea.ID, "id is assigned by the caller")
	assert.Equal(t, StatusIdeas, idea.Status)
	assert.Nil(t, idea.Score)
	assert.Nil(t, idea.Extra)
}

func TestIdeaFromPayloadStringID(t *testing.T) {
	idea, err := IdeaFromPayload(decodePayload(t, `{"id":"42","title":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(42), idea.ID)
}

func TestIdeaFromPayloadRejectsBadFields(t *testing.T) {
	cases := map[string]string{
		"fractional id":  `{"id": 1.5}`,
		"object title":   `{"title": {"a": 1}}`,
		"unknown status": `{"status": "archived"}`,
		"bool score":     `{"score": true}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := IdeaFromPayload(decodePayload(t, body))
			require.Error(t, err)
		})
	}
}

func TestIdeaPayloadFlattensExtra(t *testing.T) {
	score := 12
	idea := Idea{
		ID:     7,
		Title:  "Agents everywhere",
		Status: StatusPosted,
		Score:  &score,
		Extra:  map[string]any{"pinned": true, "title": "ignored"},
	}

	p := idea.Payload()
	assert.Equal(t, int64(7), p["id"])
	assert.Equal(t, "Agents everywhere", p["title"], "fixed fields win over extra")
	assert.Equal(t, true, p["pinned"])
	assert.Equal(t, 12, p["score"])
	assert.NotContains(t, p, "url")
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Ideas"))
}

func TestListCacheKey(t *testing.T) {
	assert.Equal(t, "ideas:list:", listCacheKey(""))
	assert.Equal(t, "ideas:list:drafts", listCacheKey(StatusDrafts))
}
