package models

// Severity grades how far a measured value overshoots its threshold.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	return string(s)
}

// Weight returns a numeric weight for sorting.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// SeverityFor grades value against threshold by ratio: below the
// threshold is none, then low up to 1.5x, medium up to 2x, high up to
// 3x, critical beyond. A non-positive threshold always grades none.
func SeverityFor(value, threshold int) Severity {
	if threshold <= 0 || value < threshold {
		return SeverityNone
	}
	ratio := float64(value) / float64(threshold)
	switch {
	case ratio >= 3:
		return SeverityCritical
	case ratio >= 2:
		return SeverityHigh
	case ratio >= 1.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}
