package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventMessage(t *testing.T) {
	data := []byte(`{
		"kind": "message",
		"message": {
			"channel": "ahwalaltreq",
			"message_id": 1001,
			"text": "حاجز قلنديا سالك",
			"timestamp": "2026-03-01T11:30:00Z"
		}
	}`)

	post, err := parseEvent(data)
	require.NoError(t, err)
	require.NotNil(t, post)

	assert.Equal(t, "ahwalaltreq", post.Channel)
	assert.EqualValues(t, 1001, post.MessageID)
	assert.Equal(t, "حاجز قلنديا سالك", post.Text)
	assert.Equal(t, time.Date(2026, 3, 1, 11, 30, 0, 0, time.UTC), post.Timestamp)
	assert.False(t, post.ScrapedAt.IsZero())
}

func TestParseEventNaiveTimestampAssumesUTC(t *testing.T) {
	data := []byte(`{"kind": "message", "message": {"channel": "ch", "message_id": 1, "text": "نص", "timestamp": "2026-03-01T11:30:00"}}`)

	post, err := parseEvent(data)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, time.Date(2026, 3, 1, 11, 30, 0, 0, time.UTC), post.Timestamp)
}

func TestParseEventIgnoresOtherKinds(t *testing.T) {
	post, err := parseEvent([]byte(`{"kind": "heartbeat"}`))
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestParseEventIgnoresEmptyText(t *testing.T) {
	data := []byte(`{"kind": "message", "message": {"channel": "ch", "message_id": 2, "text": "", "timestamp": "2026-03-01T11:30:00Z"}}`)

	post, err := parseEvent(data)
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestParseEventRejectsBadJSON(t *testing.T) {
	_, err := parseEvent([]byte(`{not json`))
	assert.Error(t, err)
}

func TestParseEventRejectsBadTimestamp(t *testing.T) {
	data := []byte(`{"kind": "message", "message": {"channel": "ch", "message_id": 3, "text": "نص", "timestamp": "yesterday"}}`)

	_, err := parseEvent(data)
	assert.Error(t, err)
}

func TestBuildURLAddsChannels(t *testing.T) {
	s := NewSubscriber("wss://gateway.example.com/stream", []string{"ahwalaltreq", "a7walstreet"}, nil, discardTestLogger())

	got := s.buildURL()
	assert.Contains(t, got, "channels=ahwalaltreq")
	assert.Contains(t, got, "channels=a7walstreet")
}
