package domain

import "strings"

// Keyword groups for status detection. Precedence is closed, then congested,
// then clear: a message mixing closed and clear vocabulary reads as closed.
var (
	closedKeywords    = []string{"مسكر", "مسكرة", "مغلق", "مغلقة", "حاجز طيّار", "حاجز طيار"}
	congestedKeywords = []string{"أزمة", "خنقة", "ازدحام", "طابور", "بطيء", "زحمة"}
	clearKeywords     = []string{"سالك", "سالكة", "فاضي", "فاضية", "مفتوح", "بدون تفتيش"}
)

// ClassifyStatus maps message text to a status label by keyword matching.
// It never fails and is the fallback whenever the inference service cannot
// be used.
func ClassifyStatus(text string) StatusLabel {
	for _, kw := range closedKeywords {
		if strings.Contains(text, kw) {
			return StatusClosed
		}
	}
	for _, kw := range congestedKeywords {
		if strings.Contains(text, kw) {
			return StatusCongested
		}
	}
	for _, kw := range clearKeywords {
		if strings.Contains(text, kw) {
			return StatusClear
		}
	}
	return StatusUnknown
}
