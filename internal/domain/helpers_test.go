package domain

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"
)

// fakePostRepository is an in-memory domain.PostRepository for tests.
type fakePostRepository struct {
	posts      []Post
	err        error
	sinceCalls int
}

func (f *fakePostRepository) SavePost(_ context.Context, post *Post) error {
	if f.err != nil {
		return f.err
	}
	for _, p := range f.posts {
		if p.Channel == post.Channel && p.MessageID == post.MessageID {
			return nil
		}
	}
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostRepository) PostsSince(_ context.Context, cutoff time.Time) ([]Post, error) {
	f.sinceCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []Post
	for _, p := range f.posts {
		if p.Timestamp.After(cutoff) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakePostRepository) ListPosts(_ context.Context, limit int) ([]Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := append([]Post(nil), f.posts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakePostRepository) CountPosts(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(f.posts)), nil
}

// fakeGenerator returns a canned reply or error and records the last call.
type fakeGenerator struct {
	reply      string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, system, prompt string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
