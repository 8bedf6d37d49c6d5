// Package sqlite implements domain.PostRepository on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tariqak/tariqak/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	channel_name TEXT NOT NULL,
	message_id INTEGER NOT NULL,
	text TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	scraped_at TEXT NOT NULL,
	UNIQUE(channel_name, message_id)
);
CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp DESC);
`

// timeLayout pads fractional seconds to a fixed width so stored timestamps
// sort lexicographically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Repository stores and queries channel messages.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the database at path, applies the
// production pragmas and ensures the schema exists. The caller should call
// Close when the repository is no longer needed.
func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Writes are serialized by SQLite anyway; a single connection avoids
	// SQLITE_BUSY under load and keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// SavePost inserts a post. A post with an already-stored
// (channel_name, message_id) pair is silently ignored, so re-ingesting the
// same message never duplicates or overwrites a row.
func (r *Repository) SavePost(ctx context.Context, post *domain.Post) error {
	scraped := post.ScrapedAt
	if scraped.IsZero() {
		scraped = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO messages (channel_name, message_id, text, timestamp, scraped_at)
		VALUES (?, ?, ?, ?, ?)`,
		post.Channel,
		post.MessageID,
		post.Text,
		formatTime(post.Timestamp),
		formatTime(scraped),
	)
	return err
}

// PostsSince retrieves posts with a timestamp strictly after cutoff, newest
// first.
func (r *Repository) PostsSince(ctx context.Context, cutoff time.Time) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT channel_name, message_id, text, timestamp, scraped_at
		FROM messages
		WHERE timestamp > ?
		ORDER BY timestamp DESC`,
		formatTime(cutoff),
	)
	if err != nil {
		return nil, fmt.Errorf("query posts since %v: %w", cutoff, err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListPosts retrieves the most recent posts up to limit, newest first.
func (r *Repository) ListPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT channel_name, message_id, text, timestamp, scraped_at
		FROM messages
		ORDER BY timestamp DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query posts (limit=%d): %w", limit, err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// CountPosts returns the total number of stored messages.
func (r *Repository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	var posts []domain.Post
	for rows.Next() {
		var (
			p           domain.Post
			ts, scraped string
		)
		if err := rows.Scan(&p.Channel, &p.MessageID, &p.Text, &ts, &scraped); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}

		var err error
		if p.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		if p.ScrapedAt, err = parseTime(scraped); err != nil {
			return nil, fmt.Errorf("parse scraped_at %q: %w", scraped, err)
		}

		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp. Values without an explicit zone are
// taken as UTC.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
}
