package matcher

import (
	"regexp"
	"strings"
)

var (
	articlePattern  = regexp.MustCompile(`(?i)^(.+),\s*(the|a|an|der|das|die)$`)
	bracketPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\[.+?\]`),
		regexp.MustCompile(`\(.+?\)`),
		regexp.MustCompile(`\{.+?\}`),
	}
	trademarkGlyphs = strings.NewReplacer("™", "", "®", "", "©", "")
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Sanitize is the pure name-normalization function applied to both the
// request name and every candidate name before comparison (§4.5.2). It is
// idempotent: Sanitize(Sanitize(s)) == Sanitize(s) for all s.
func Sanitize(s string) string {
	if m := articlePattern.FindStringSubmatch(s); m != nil {
		s = m[2] + " " + strings.TrimSpace(m[1])
	}

	for _, pattern := range bracketPatterns {
		s = pattern.ReplaceAllString(s, "")
	}

	s = trademarkGlyphs.Replace(s)

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "’", "'")
	s = strings.ReplaceAll(s, "`", "")

	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
