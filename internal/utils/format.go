package utils

import (
	"strconv"
	"strings"
)

// FormatAmount renders a float the way flagging reasons have always shown
// it: shortest exact form, with whole numbers keeping a trailing ".0".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
