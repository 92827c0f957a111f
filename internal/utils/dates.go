package utils

import (
	"strings"
	"time"
)

// FeedDateLayouts are the date formats accepted from the core banking feed,
// tried in order.
var FeedDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"01/02/2006",
}

// ParseFeedDate parses s with the first matching feed layout.
func ParseFeedDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range FeedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseFeedDatePtr is ParseFeedDate returning nil when s does not parse.
func ParseFeedDatePtr(s string) *time.Time {
	t, ok := ParseFeedDate(s)
	if !ok {
		return nil
	}
	return &t
}
