package transaction

import "strings"

// Label is the recurring/not-recurring annotation attached to a labeled
// transaction.
type Label int

const (
	NotRecurring Label = 0
	Recurring    Label = 1
)

// ParseLabel maps the raw "recurring" column to a Label. Only "1" counts
// as recurring.
func ParseLabel(raw string) Label {
	if strings.TrimSpace(raw) == "1" {
		return Recurring
	}
	return NotRecurring
}

// NormalizeRawLabel keeps the labeler's original value, defaulting empty
// cells to "0".
func NormalizeRawLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "0"
	}
	return raw
}
