package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Truncate shortens s to width display cells, ending with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// Wrap word-wraps s to width and indents every line by pad spaces.
// Flavor text arrives with hard line breaks, which are folded first. Text
// without spaces is hard-wrapped.
func Wrap(s string, width int, pad int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width > pad {
		s = wrap.String(wordwrap.String(s, width-pad), width-pad)
	}
	if pad > 0 {
		s = indent.String(s, uint(pad))
	}
	return s
}

// FormatDuration renders d rounded for display
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}
