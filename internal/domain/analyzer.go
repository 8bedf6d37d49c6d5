package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	statusWindow     = 6 * time.Hour
	statusPromptCap  = 80
	summaryRuneLimit = 80

	// emptySentinel is what the inference boundary emits when it has no
	// data. It is treated exactly like an unreachable service.
	emptySentinel = `{"checkpoints": []}`
)

// replyKind classifies the outcome of an inference call so the recoverable
// conditions are handled as an explicit set instead of a catch-all.
type replyKind int

const (
	replyOK replyKind = iota
	replyUnavailable
	replyMalformed
)

// llmCheckpoint is one per-location record in the service's JSON reply.
type llmCheckpoint struct {
	NameAr  string `json:"name_ar"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

// StatusService computes the dashboard snapshot from recent posts,
// preferring the inference service and falling back to keyword analysis.
type StatusService struct {
	repo   PostRepository
	gen    Generator
	logger *slog.Logger
	now    func() time.Time
}

// NewStatusService creates a StatusService. gen may be nil, in which case
// every snapshot is computed by keyword analysis alone.
func NewStatusService(repo PostRepository, gen Generator, logger *slog.Logger) *StatusService {
	return &StatusService{
		repo:   repo,
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
}

// AnalyzeCheckpoints produces a status snapshot for the dashboard
// checkpoints from the last six hours of posts. Inference failures never
// surface as errors; only a failing post store does.
func (s *StatusService) AnalyzeCheckpoints(ctx context.Context) (*StatusSnapshot, error) {
	now := s.now()
	posts, err := s.repo.PostsSince(ctx, now.Add(-statusWindow))
	if err != nil {
		return nil, fmt.Errorf("fetch recent posts: %w", err)
	}

	if len(posts) == 0 {
		s.logger.Info("no posts in status window, serving empty snapshot")
		return s.emptySnapshot(now), nil
	}

	raw, kind := askGenerator(ctx, s.gen, s.logger, statusSystemPrompt, buildStatusPrompt(posts))

	var byName map[string]llmCheckpoint
	if kind == replyOK {
		byName, kind = parseStatusReply(raw)
	}

	switch kind {
	case replyOK:
		return s.serviceSnapshot(byName, posts, now), nil
	case replyMalformed:
		s.logger.Warn("unparseable inference reply, using keyword analysis",
			"reply_preview", truncateRunes(raw, 200))
		return s.keywordSnapshot(posts, now), nil
	default: // replyUnavailable
		s.logger.Warn("inference service unavailable, using keyword analysis")
		return s.keywordSnapshot(posts, now), nil
	}
}

// askGenerator invokes gen and classifies the outcome, folding transport
// errors, empty replies and the no-data sentinel into replyUnavailable.
func askGenerator(ctx context.Context, gen Generator, logger *slog.Logger, system, prompt string) (string, replyKind) {
	if gen == nil {
		return "", replyUnavailable
	}
	raw, err := gen.Generate(ctx, system, prompt)
	if err != nil {
		logger.Warn("inference request failed", "error", err)
		return "", replyUnavailable
	}
	if t := strings.TrimSpace(raw); t == "" || t == emptySentinel {
		return "", replyUnavailable
	}
	return raw, replyOK
}

// parseStatusReply extracts the JSON span between the first '{' and the last
// '}' (the model sometimes wraps it in commentary) and decodes the
// per-checkpoint records, keyed by Arabic name.
func parseStatusReply(raw string) (map[string]llmCheckpoint, replyKind) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, replyMalformed
	}

	var reply struct {
		Checkpoints []llmCheckpoint `json:"checkpoints"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &reply); err != nil {
		return nil, replyMalformed
	}

	byName := make(map[string]llmCheckpoint, len(reply.Checkpoints))
	for _, cp := range reply.Checkpoints {
		byName[cp.NameAr] = cp
	}
	return byName, replyOK
}

// serviceSnapshot builds the snapshot from the service's records. The
// service's own timestamp claims are not trusted: the age shown always comes
// from the newest stored post mentioning the location.
func (s *StatusService) serviceSnapshot(byName map[string]llmCheckpoint, posts []Post, now time.Time) *StatusSnapshot {
	snap := &StatusSnapshot{GeneratedAt: now}
	for _, cp := range DashboardCheckpoints() {
		label := StatusUnknown
		summary := NoInformation
		if rec, ok := byName[cp.NameAr]; ok {
			label = LabelFromArabic(rec.Status)
			if rec.Summary != "" {
				summary = rec.Summary
			}
		}

		lastUpdate := StatusUnknown.Arabic()
		if p, ok := newestMatch(posts, cp); ok {
			lastUpdate = RelativeTime(p.Timestamp, now)
		}

		snap.Checkpoints = append(snap.Checkpoints, newCheckpointStatus(cp, label, lastUpdate, summary))
	}
	return snap
}

// keywordSnapshot is the deterministic fallback: for each dashboard
// checkpoint, the newest post mentioning it supplies the label, summary and
// age.
func (s *StatusService) keywordSnapshot(posts []Post, now time.Time) *StatusSnapshot {
	snap := &StatusSnapshot{GeneratedAt: now}
	for _, cp := range DashboardCheckpoints() {
		label := StatusUnknown
		summary := NoRecentReports
		lastUpdate := NoUpdates

		if p, ok := newestMatch(posts, cp); ok {
			label = ClassifyStatus(p.Text)
			summary = truncateRunes(p.Text, summaryRuneLimit)
			lastUpdate = RelativeTime(p.Timestamp, now)
		}

		snap.Checkpoints = append(snap.Checkpoints, newCheckpointStatus(cp, label, lastUpdate, summary))
	}
	return snap
}

func (s *StatusService) emptySnapshot(now time.Time) *StatusSnapshot {
	snap := &StatusSnapshot{GeneratedAt: now}
	for _, cp := range DashboardCheckpoints() {
		snap.Checkpoints = append(snap.Checkpoints, newCheckpointStatus(cp, StatusUnknown, NoUpdates, NoRecentReports))
	}
	return snap
}

// newestMatch returns the first post (posts arrive newest first) mentioning
// loc.
func newestMatch(posts []Post, loc Location) (Post, bool) {
	for _, p := range posts {
		if loc.Matches(p.Text) {
			return p, true
		}
	}
	return Post{}, false
}

// truncateRunes shortens s to at most n runes, appending "..." if cut.
// Rune-based so Arabic text is never split mid-character.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
