package domain

import (
	"context"
	"time"
)

// PostRepository defines persistence operations for channel messages.
type PostRepository interface {
	// SavePost inserts a post into the store. Re-saving a post with the
	// same (channel, message ID) pair is a no-op, never an error.
	SavePost(ctx context.Context, post *Post) error

	// PostsSince retrieves all posts with a timestamp strictly after
	// cutoff, ordered newest first. An empty window yields an empty
	// slice, not an error.
	PostsSince(ctx context.Context, cutoff time.Time) ([]Post, error)

	// ListPosts retrieves the most recent posts up to limit, newest first.
	ListPosts(ctx context.Context, limit int) ([]Post, error)

	// CountPosts returns the total number of stored posts.
	CountPosts(ctx context.Context) (int64, error)
}

// Generator is the inference-service boundary. Generate sends a system
// instruction plus a user prompt and returns the raw reply text. Callers
// treat any error as service-unavailable and take their fallback path.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}
