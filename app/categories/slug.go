package categories

import (
	"regexp"
	"strings"
)

var (
	slugStripRgx   = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpaceRgx   = regexp.MustCompile(`\s+`)
	slugCollapseRx = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a display name: lowercase, strip everything
// outside [a-z0-9 -], turn whitespace runs into single hyphens, collapse
// repeated hyphens, trim the ends. Non-ASCII letters are stripped, not
// transliterated, so "Café & Spice!!" becomes "caf-spice".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStripRgx.ReplaceAllString(s, "")
	s = slugSpaceRgx.ReplaceAllString(s, "-")
	s = slugCollapseRx.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
