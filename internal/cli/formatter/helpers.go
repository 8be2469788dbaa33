package formatter

import (
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Hours renders an hour count rounded to two decimals with thousands
// separators, e.g. "1,250.5h".
func Hours(h float64) string {
	return humanize.Commaf(math.Round(h*100)/100) + "h"
}

// Count renders an integer with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// UserName renders a load key, naming the unassigned bucket.
func UserName(user string) string {
	if user == domain.Unassigned {
		return Dim("(unassigned)")
	}
	return user
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// RelativeTime returns a human-friendly relative timestamp like
// "3 minutes ago".
func RelativeTime(t time.Time) string {
	return humanize.Time(t)
}

// Duration renders the elapsed time of a run.
func Duration(start time.Time, end *time.Time) string {
	if end == nil {
		return Dim("--")
	}
	return end.Sub(start).Round(time.Millisecond).String()
}
