package domain

// ListLimit bounds the page size of a list query.
type ListLimit struct {
	Default int
	Max     int
}

var (
	NotificationListLimit = ListLimit{Default: 50, Max: 200}
	ActivityListLimit     = ListLimit{Default: 100, Max: 300}
)

// Clamp maps a caller supplied limit into [1, Max]. Zero means "not given"
// and falls back to Default.
func (l ListLimit) Clamp(limit int) int {
	if limit == 0 {
		return l.Default
	}
	if limit < 1 {
		return 1
	}
	if limit > l.Max {
		return l.Max
	}
	return limit
}
