// Package ingest subscribes to the message gateway's websocket stream and
// persists channel messages.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tariqak/tariqak/internal/domain"
)

const (
	reconnectDelay = 5 * time.Second
	statsInterval  = 30 * time.Second
)

// Subscriber connects to the gateway stream and stores message events.
// Deduplication happens in the repository via the (channel, message ID)
// natural key, so replays after a reconnect are harmless.
type Subscriber struct {
	url      string
	channels []string
	repo     domain.PostRepository
	logger   *slog.Logger
}

// NewSubscriber creates a gateway subscriber for the given channels.
func NewSubscriber(gatewayURL string, channels []string, repo domain.PostRepository, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		url:      gatewayURL,
		channels: channels,
		repo:     repo,
		logger:   logger,
	}
}

// Start connects to the gateway and processes events until the context is
// cancelled. It automatically reconnects on transient errors.
func (s *Subscriber) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.subscribe(ctx); err != nil {
				s.logger.Error("gateway connection error, reconnecting", "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(reconnectDelay):
					// backoff before reconnecting
				}
			}
		}
	}
}

func (s *Subscriber) buildURL() string {
	u, err := url.Parse(s.url)
	if err != nil {
		return s.url
	}
	q := u.Query()
	for _, ch := range s.channels {
		q.Add("channels", ch)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *Subscriber) subscribe(ctx context.Context) error {
	wsURL := s.buildURL()
	s.logger.Info("connecting to message gateway", "url", wsURL)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial gateway: %w", err)
	}
	defer conn.Close()

	s.logger.Info("connected to message gateway")

	var eventsReceived, postsStored int64
	lastStatsLog := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		post, err := parseEvent(message)
		if err != nil {
			s.logger.Error("failed to parse event", "error", err)
			continue
		}
		eventsReceived++
		if post == nil {
			continue
		}

		if err := s.repo.SavePost(ctx, post); err != nil {
			s.logger.Error("failed to store message",
				"channel", post.Channel,
				"message_id", post.MessageID,
				"error", err,
			)
			continue
		}
		postsStored++

		if time.Since(lastStatsLog) >= statsInterval {
			s.logger.Info("gateway stats",
				"events_received", eventsReceived,
				"posts_stored", postsStored,
			)
			lastStatsLog = time.Now()
		}
	}
}

// parseEvent decodes a gateway event. Events that are not channel messages,
// or messages without text, yield nil.
func parseEvent(data []byte) (*domain.Post, error) {
	var event gatewayEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if event.Kind != "message" || event.Message == nil {
		return nil, nil
	}

	msg := event.Message
	if msg.Text == "" {
		return nil, nil
	}

	ts, err := parseTimestamp(msg.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", msg.Timestamp, err)
	}

	return &domain.Post{
		Channel:   msg.Channel,
		MessageID: msg.MessageID,
		Text:      msg.Text,
		Timestamp: ts,
		ScrapedAt: time.Now().UTC(),
	}, nil
}

// parseTimestamp accepts RFC 3339; a value without an explicit zone is taken
// as UTC.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
}
