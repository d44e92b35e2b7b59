// Package render holds the pure presentation helpers the reply views use:
// avatar URL resolution and relative date formatting. No I/O, no state.
package render

import (
	"fmt"
	"strings"
	"time"

	"quorum/internal/models"
)

// AvatarURL resolves the avatar image URL for a profile against a CDN base.
// Profiles without an uploaded avatar get an empty URL and the client falls
// back to its placeholder art.
func AvatarURL(cdnBase string, p *models.Profile) string {
	if p == nil || p.AvatarKey == "" {
		return ""
	}
	return strings.TrimRight(cdnBase, "/") + "/avatars/" + p.AvatarKey
}

// RelativeDate formats how long ago a timestamp was, relative to now.
func RelativeDate(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 48*time.Hour:
		return "yesterday"
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
