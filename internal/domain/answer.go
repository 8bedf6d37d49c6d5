package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	// The chat window is wider than the dashboard's: a direct question may
	// reference older context.
	chatWindow    = 12 * time.Hour
	chatPromptCap = 60
)

// QueryService answers free-text questions about road conditions using
// recent posts as context.
type QueryService struct {
	repo   PostRepository
	gen    Generator
	logger *slog.Logger
	now    func() time.Time
}

// NewQueryService creates a QueryService. gen may be nil, in which case
// every question is answered by the deterministic responder.
func NewQueryService(repo PostRepository, gen Generator, logger *slog.Logger) *QueryService {
	return &QueryService{
		repo:   repo,
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
}

// Answer responds to question. The returned count is the number of posts in
// the lookup window, whichever path produced the answer.
func (s *QueryService) Answer(ctx context.Context, question string) (string, int, error) {
	now := s.now()
	posts, err := s.repo.PostsSince(ctx, now.Add(-chatWindow))
	if err != nil {
		return "", 0, fmt.Errorf("fetch recent posts: %w", err)
	}

	raw, kind := askGenerator(ctx, s.gen, s.logger, chatSystemPrompt, buildChatPrompt(question, posts))
	if kind == replyOK {
		return raw, len(posts), nil
	}

	s.logger.Warn("inference service unavailable for query, using local answer")
	return s.localAnswer(question, posts, now), len(posts), nil
}

// localAnswer is the deterministic responder. A question mentioning a known
// location is answered from the newest post about it; otherwise the latest
// posts are listed.
func (s *QueryService) localAnswer(question string, posts []Post, now time.Time) string {
	for _, loc := range AllLocations() {
		if !loc.Matches(question) && !strings.Contains(question, loc.NameAr) {
			continue
		}
		p, ok := newestMatch(posts, loc)
		if !ok {
			break
		}
		label := ClassifyStatus(p.Text)
		return fmt.Sprintf("حسب آخر التقارير (%s):\n%s: %s\nالتفاصيل: %s",
			RelativeTime(p.Timestamp, now), loc.NameAr, label.Arabic(), truncateRunes(p.Text, 150))
	}

	if len(posts) == 0 {
		return "ما في تحديثات حديثة هلأ. جرب تسأل بعدين."
	}

	lines := []string{"هاي آخر الأخبار اللي عنا:\n"}
	for i, p := range posts {
		if i == 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("• %s (%s)", truncateRunes(p.Text, 100), RelativeTime(p.Timestamp, now)))
	}
	return strings.Join(lines, "\n")
}
