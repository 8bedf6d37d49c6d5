package domain

import "strings"

// Location is a named checkpoint or road together with the keywords used to
// spot mentions of it in message text.
type Location struct {
	NameAr   string
	NameEn   string
	Keywords []string
}

// Matches reports whether text mentions this location.
func (l Location) Matches(text string) bool {
	for _, kw := range l.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Checkpoints is the fixed checkpoint catalog. The first six entries form
// the dashboard subset; their order is part of the API contract.
var Checkpoints = []Location{
	{"قلنديا", "Qalandia", []string{"قلنديا", "قلنديه", "حاجز قلنديا"}},
	{"حوارة", "Huwwara", []string{"حوارة", "حواره", "حاجز حوارة"}},
	{"زعترة", "Za'tara", []string{"زعترة", "زعتره", "حاجز زعترة", "تبوح"}},
	{"الكونتينر", "Container", []string{"الكونتينر", "كونتينر", "الكنتنر", "حاجز الكونتينر"}},
	{"جبع", "Jaba'", []string{"جبع", "حاجز جبع"}},
	{"عناب", "Anab", []string{"عناب", "حاجز عناب"}},
	{"عطارة", "Atara", []string{"عطارة", "عطاره", "حاجز عطارة"}},
	{"بيت فوريك", "Beit Furik", []string{"بيت فوريك", "حاجز بيت فوريك"}},
	{"صرّة", "Surra", []string{"صرة", "صره", "حاجز صرة"}},
	{"عين سينيا", "Ein Sinya", []string{"عين سينيا", "عين سينية"}},
}

// Roads is the fixed road catalog.
var Roads = []Location{
	{"وادي النار", "Wadi al-Nar", []string{"وادي النار", "وادي نار"}},
	{"طريق المعرجات", "Al-Ma'arrajat", []string{"المعرجات", "معرجات", "طريق المعرجات"}},
	{"عيون حرامية", "Uyun Haramiya", []string{"عيون حرامية", "عيون الحرامية"}},
	{"النبي صالح", "Nabi Saleh", []string{"النبي صالح", "نبي صالح"}},
	{"وادي قانا", "Wadi Qana", []string{"وادي قانا"}},
}

// AllLocations returns the checkpoint and road catalogs combined, in
// declaration order.
func AllLocations() []Location {
	all := make([]Location, 0, len(Checkpoints)+len(Roads))
	all = append(all, Checkpoints...)
	all = append(all, Roads...)
	return all
}

// DashboardCheckpoints returns the six checkpoints surfaced on the summary
// view, in display order.
func DashboardCheckpoints() []Location {
	return Checkpoints[:6]
}

// FindLocations returns every location mentioned in text, in catalog order.
// A location is reported at most once no matter how many of its keywords
// appear.
func FindLocations(text string) []Location {
	var found []Location
	for _, loc := range AllLocations() {
		if loc.Matches(text) {
			found = append(found, loc)
		}
	}
	return found
}
