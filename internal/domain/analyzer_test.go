package domain

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStatusService(repo PostRepository, gen Generator) *StatusService {
	svc := NewStatusService(repo, gen, discardLogger())
	svc.now = func() time.Time { return testNow }
	return svc
}

func qalandiaPost(text string, age time.Duration) Post {
	return Post{
		Channel:   "ahwalaltreq",
		MessageID: 1001,
		Text:      text,
		Timestamp: testNow.Add(-age),
		ScrapedAt: testNow,
	}
}

func TestAnalyzeEmptyStore(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestStatusService(&fakePostRepository{}, gen)

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Checkpoints, 6)
	for _, cp := range snap.Checkpoints {
		assert.Equal(t, StatusUnknown, cp.Status)
		assert.Equal(t, "grey", cp.Color)
		assert.Equal(t, NoRecentReports, cp.Summary)
		assert.Equal(t, NoUpdates, cp.LastUpdate)
	}
	assert.Equal(t, testNow, snap.GeneratedAt)

	// The inference service must not be contacted without context.
	assert.Zero(t, gen.calls)
}

func TestAnalyzeServiceUnreachable(t *testing.T) {
	repo := &fakePostRepository{posts: []Post{
		qalandiaPost("حاجز قلنديا مسكر اليوم", 10*time.Minute),
	}}
	svc := newTestStatusService(repo, &fakeGenerator{err: errors.New("connection refused")})

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Checkpoints, 6)

	qalandia := snap.Checkpoints[0]
	assert.Equal(t, "قلنديا", qalandia.NameAr)
	assert.Equal(t, StatusClosed, qalandia.Status)
	assert.Equal(t, "red", qalandia.Color)
	assert.Equal(t, "حاجز قلنديا مسكر اليوم", qalandia.Summary)
	assert.Equal(t, "منذ 10 دقائق", qalandia.LastUpdate)

	// Checkpoints with no matching posts stay unknown.
	huwwara := snap.Checkpoints[1]
	assert.Equal(t, StatusUnknown, huwwara.Status)
	assert.Equal(t, NoRecentReports, huwwara.Summary)
	assert.Equal(t, NoUpdates, huwwara.LastUpdate)
}

// The empty-data sentinel must produce the identical snapshot as an
// unreachable service.
func TestAnalyzeSentinelMatchesUnreachable(t *testing.T) {
	posts := []Post{qalandiaPost("قلنديا أزمة خنقة والطابور طويل", 25*time.Minute)}

	unreachable := newTestStatusService(&fakePostRepository{posts: posts}, &fakeGenerator{err: errors.New("timeout")})
	sentinel := newTestStatusService(&fakePostRepository{posts: posts}, &fakeGenerator{reply: `{"checkpoints": []}`})

	snapA, err := unreachable.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)
	snapB, err := sentinel.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)

	assert.Equal(t, snapA, snapB)
	assert.Equal(t, StatusCongested, snapB.Checkpoints[0].Status)
}

func TestAnalyzeEmptyReplyFallsBack(t *testing.T) {
	repo := &fakePostRepository{posts: []Post{
		qalandiaPost("قلنديا سالكة والحمد لله", time.Hour),
	}}
	svc := newTestStatusService(repo, &fakeGenerator{reply: "   \n"})

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusClear, snap.Checkpoints[0].Status)
}

func TestAnalyzeMalformedReplyFallsBack(t *testing.T) {
	repo := &fakePostRepository{posts: []Post{
		qalandiaPost("قلنديا مسكرة بالكامل", 5*time.Minute),
	}}
	svc := newTestStatusService(repo, &fakeGenerator{reply: "sorry, I cannot help with that"})

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, snap.Checkpoints[0].Status)
	assert.Equal(t, "قلنديا مسكرة بالكامل", snap.Checkpoints[0].Summary)
}

func TestAnalyzeTruncatedJSONFallsBack(t *testing.T) {
	repo := &fakePostRepository{posts: []Post{
		qalandiaPost("قلنديا مسكرة", 5*time.Minute),
	}}
	svc := newTestStatusService(repo, &fakeGenerator{reply: `{"checkpoints": [{"name_ar": "قلنديا"`})

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, snap.Checkpoints[0].Status)
}

func TestAnalyzeServiceReply(t *testing.T) {
	repo := &fakePostRepository{posts: []Post{
		qalandiaPost("قلنديا مسكرة من الصبح", 45*time.Minute),
	}}
	// Commentary around the JSON span must be discarded.
	gen := &fakeGenerator{reply: "أكيد! هاي النتيجة:\n" +
		`{"checkpoints": [{"name_ar": "قلنديا", "status": "مسكرة", "summary": "الحاجز مسكر من الصبح"}]}` +
		"\nخبرني إذا بدك شي تاني."}
	svc := newTestStatusService(repo, gen)

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Checkpoints, 6)

	qalandia := snap.Checkpoints[0]
	assert.Equal(t, StatusClosed, qalandia.Status)
	assert.Equal(t, "الحاجز مسكر من الصبح", qalandia.Summary)
	// Age comes from the stored post, not from the service.
	assert.Equal(t, "منذ 45 دقيقة", qalandia.LastUpdate)

	// Checkpoints absent from the reply report no information.
	huwwara := snap.Checkpoints[1]
	assert.Equal(t, StatusUnknown, huwwara.Status)
	assert.Equal(t, NoInformation, huwwara.Summary)
	assert.Equal(t, "غير معروف", huwwara.LastUpdate)
}

func TestAnalyzeUnknownServiceLabel(t *testing.T) {
	repo := &fakePostRepository{posts: []Post{
		qalandiaPost("قلنديا في وضع غريب", 5*time.Minute),
	}}
	gen := &fakeGenerator{reply: `{"checkpoints": [{"name_ar": "قلنديا", "status": "شبه سالكة", "summary": "مش واضح"}]}`}
	svc := newTestStatusService(repo, gen)

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, snap.Checkpoints[0].Status)
	assert.Equal(t, "grey", snap.Checkpoints[0].Color)
}

func TestAnalyzeSummaryTruncation(t *testing.T) {
	long := strings.Repeat("أ", 120)
	repo := &fakePostRepository{posts: []Post{
		qalandiaPost("قلنديا مسكرة "+long, 5*time.Minute),
	}}
	svc := newTestStatusService(repo, nil)

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)

	summary := snap.Checkpoints[0].Summary
	assert.True(t, strings.HasSuffix(summary, "..."))
	assert.Len(t, []rune(summary), summaryRuneLimit+3)
}

func TestAnalyzePromptContents(t *testing.T) {
	repo := &fakePostRepository{posts: []Post{
		qalandiaPost("حاجز قلنديا سالك", 10*time.Minute),
	}}
	gen := &fakeGenerator{err: errors.New("unreachable")}
	svc := newTestStatusService(repo, gen)

	_, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.lastPrompt, "(ahwalaltreq): حاجز قلنديا سالك")
	for _, cp := range DashboardCheckpoints() {
		assert.Contains(t, gen.lastPrompt, cp.NameAr)
	}
	assert.Contains(t, gen.lastSystem, `"checkpoints"`)
}

func TestAnalyzeOldPostsOutsideWindow(t *testing.T) {
	repo := &fakePostRepository{posts: []Post{
		qalandiaPost("قلنديا مسكرة", 7*time.Hour),
	}}
	gen := &fakeGenerator{}
	svc := newTestStatusService(repo, gen)

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.NoError(t, err)

	// Posts beyond the six-hour window do not count as context.
	assert.Zero(t, gen.calls)
	assert.Equal(t, StatusUnknown, snap.Checkpoints[0].Status)
	assert.Equal(t, NoRecentReports, snap.Checkpoints[0].Summary)
}

func TestAnalyzeStoreErrorPropagates(t *testing.T) {
	repo := &fakePostRepository{err: errors.New("disk failure")}
	svc := newTestStatusService(repo, &fakeGenerator{})

	snap, err := svc.AnalyzeCheckpoints(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.ErrorContains(t, err, "disk failure")
}
