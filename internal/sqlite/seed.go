package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/tariqak/tariqak/internal/domain"
)

// sampleMessages is the development dataset used when no gateway is
// configured. Offsets are minutes relative to seed time.
var sampleMessages = []struct {
	channel    string
	messageID  int64
	text       string
	minutesAgo int
}{
	{"ahwalaltreq", 1001, "حاجز قلنديا سالك هلأ والتفتيش خفيف", -30},
	{"ahwalaltreq", 1002, "الكونتينر سالك والحمد لله، ما في تفتيش", -120},
	{"ahwalaltreq", 1003, "حاجز عناب سالك بدون تفتيش والطريق فاضية", -15},
	{"ahwalaltreq", 1004, "قلنديا صار في أزمة، الطابور طويل كتير والتفتيش بطيء", -10},
	{"ahwalaltreq", 1005, "وادي النار سالك ومفتوح بالاتجاهين", -45},
	{"a7walstreet", 2001, "حاجز حوارة مسكر بالكامل، الجيش عامل حاجز طيّار", -45},
	{"a7walstreet", 2002, "حاجز جبع أزمة خفيفة بس ماشي الحال، صف سيارات قصير", -60},
	{"a7walstreet", 2003, "حاجز زعترة في أزمة خنقة، صف طويل من السيارات بالاتجاهين", -90},
	{"a7walstreet", 2004, "طريق المعرجات سالك لكن في تواجد عسكري خفيف", -20},
	{"Palestine_Streets_Radar", 3001, "أزمة خنقة على حاجز زعترة، حاسبوا حالكم", -85},
	{"Palestine_Streets_Radar", 3002, "حوارة لسا مسكر، استخدموا طريق بديل", -40},
	{"Palestine_Streets_Radar", 3003, "قلنديا أزمة خنقة من ساعة تقريباً", -25},
	{"Palestine_Streets_Radar", 3004, "عين سينيا سالكة والحمد لله", -50},
	{"Palestine_Streets_Radar", 3005, "عيون حرامية منطقة هادية وسالكة", -70},
}

// SeedSampleData inserts the development dataset with timestamps relative to
// now. Rows whose natural key already exists are left untouched.
func (r *Repository) SeedSampleData(ctx context.Context, now time.Time) (int, error) {
	for _, m := range sampleMessages {
		post := &domain.Post{
			Channel:   m.channel,
			MessageID: m.messageID,
			Text:      m.text,
			Timestamp: now.Add(time.Duration(m.minutesAgo) * time.Minute),
			ScrapedAt: now,
		}
		if err := r.SavePost(ctx, post); err != nil {
			return 0, fmt.Errorf("seed message %d: %w", m.messageID, err)
		}
	}
	return len(sampleMessages), nil
}
