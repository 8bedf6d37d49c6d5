package domain

import (
	"fmt"
	"time"
)

// Fixed display strings for the no-data cases.
const (
	NoUpdates       = "لا يوجد تحديثات"
	NoRecentReports = "ما في تقارير حديثة"
	NoInformation   = "ما في معلومات"
)

// RelativeTime renders the age of ts relative to now in Arabic. The bucket
// structure follows Arabic grammatical number: singular, dual, 3-10 plural,
// then singular-counted above 10. Conversions truncate toward zero.
func RelativeTime(ts, now time.Time) string {
	minutes := int(now.Sub(ts).Minutes())

	switch {
	case minutes < 1:
		return "الآن"
	case minutes < 60:
		switch {
		case minutes == 1:
			return "منذ دقيقة"
		case minutes == 2:
			return "منذ دقيقتين"
		case minutes <= 10:
			return fmt.Sprintf("منذ %d دقائق", minutes)
		default:
			return fmt.Sprintf("منذ %d دقيقة", minutes)
		}
	case minutes < 1440:
		hours := minutes / 60
		switch {
		case hours == 1:
			return "منذ ساعة"
		case hours == 2:
			return "منذ ساعتين"
		case hours <= 10:
			return fmt.Sprintf("منذ %d ساعات", hours)
		default:
			return fmt.Sprintf("منذ %d ساعة", hours)
		}
	default:
		days := minutes / 1440
		switch {
		case days == 1:
			return "منذ يوم"
		case days == 2:
			return "منذ يومين"
		case days <= 10:
			return fmt.Sprintf("منذ %d أيام", days)
		default:
			return fmt.Sprintf("منذ %d يوم", days)
		}
	}
}
