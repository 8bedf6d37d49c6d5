package domain

import (
	"strings"
	"time"
)

// StatusLabel is the closed set of road states the system reports.
type StatusLabel string

// The four possible labels. Anything else normalizes to StatusUnknown.
const (
	StatusClear     StatusLabel = "clear"
	StatusClosed    StatusLabel = "closed"
	StatusCongested StatusLabel = "congested"
	StatusUnknown   StatusLabel = "unknown"
)

// Arabic returns the label's display form as used by the source channels.
func (s StatusLabel) Arabic() string {
	switch s {
	case StatusClear:
		return "سالكة"
	case StatusClosed:
		return "مسكرة"
	case StatusCongested:
		return "أزمة خنقة"
	default:
		return "غير معروف"
	}
}

// Color returns the dashboard color for the label.
func (s StatusLabel) Color() string {
	switch s {
	case StatusClear:
		return "green"
	case StatusClosed:
		return "red"
	case StatusCongested:
		return "orange"
	default:
		return "grey"
	}
}

// LabelFromArabic maps an Arabic status word back to a label. The inference
// service is instructed to use the four display forms, but a few common
// variants are tolerated; anything else is unknown.
func LabelFromArabic(s string) StatusLabel {
	switch strings.TrimSpace(s) {
	case "سالكة", "سالك":
		return StatusClear
	case "مسكرة", "مسكر", "مغلقة", "مغلق":
		return StatusClosed
	case "أزمة خنقة", "أزمة", "ازدحام":
		return StatusCongested
	default:
		return StatusUnknown
	}
}

// CheckpointStatus is one dashboard entry. It is derived on demand and never
// persisted.
type CheckpointStatus struct {
	NameAr     string      `json:"name_ar"`
	NameEn     string      `json:"name_en"`
	Status     StatusLabel `json:"status"`
	StatusAr   string      `json:"status_ar"`
	Color      string      `json:"color"`
	LastUpdate string      `json:"last_update"`
	Summary    string      `json:"summary"`
}

func newCheckpointStatus(loc Location, label StatusLabel, lastUpdate, summary string) CheckpointStatus {
	return CheckpointStatus{
		NameAr:     loc.NameAr,
		NameEn:     loc.NameEn,
		Status:     label,
		StatusAr:   label.Arabic(),
		Color:      label.Color(),
		LastUpdate: lastUpdate,
		Summary:    summary,
	}
}

// StatusSnapshot is the full dashboard state at a point in time. Snapshots
// are replaced wholesale on recomputation, never merged.
type StatusSnapshot struct {
	Checkpoints []CheckpointStatus `json:"checkpoints"`
	GeneratedAt time.Time          `json:"generated_at"`
}
