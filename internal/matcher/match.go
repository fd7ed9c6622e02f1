package matcher

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/igdb-mirror/catalog-service/internal/domain"
)

var (
	andWord     = regexp.MustCompile(`(?i)\s+and\s+`)
	colonOrDash = regexp.MustCompile(`\s*(:|-)\s*`)
)

// sanitizedCandidate pairs a candidate game with its sanitized name,
// computed once per Match call so every pass starts from the same base.
type sanitizedCandidate struct {
	sanitizedName string
	game          *domain.Game
}

// pass is one row of §4.5.3's table: given the sanitized request name and
// the base candidate set, it returns the (possibly transformed) name and
// candidate set to compare for this pass.
type pass func(n string, candidates []sanitizedCandidate) (string, []sanitizedCandidate)

// Match finds the single best game for request.Name plus optional
// ReleaseYear, running the ordered passes of §4.5.3 until one yields a
// non-nil match. Returns (nil, nil) when no pass matches.
func (m *Matcher) Match(ctx context.Context, request domain.MetadataRequest) (*domain.Game, error) {
	sanitizedName := Sanitize(request.Name)

	results, err := m.search(ctx, sanitizedName)
	if err != nil {
		return nil, err
	}

	base := make([]sanitizedCandidate, 0, len(results))
	for _, r := range results {
		base = append(base, sanitizedCandidate{sanitizedName: Sanitize(r.name), game: r.game})
	}

	passes := []pass{passIdentity, passRomanize, passPrefixThe, passAmpersand, passStripApostrophes, passCollapseColonDash}
	for _, p := range passes {
		n, candidates := p(sanitizedName, base)
		if game := resolveEquality(candidates, n, request.ReleaseYear); game != nil {
			return game, nil
		}
	}

	return passSubtitleTrim(sanitizedName, base), nil
}

// passIdentity (P1): no transform.
func passIdentity(n string, candidates []sanitizedCandidate) (string, []sanitizedCandidate) {
	return n, candidates
}

// passRomanize (P2): replace every run of digits in n with its Roman
// numeral form; candidates unchanged.
func passRomanize(n string, candidates []sanitizedCandidate) (string, []sanitizedCandidate) {
	return romanizeDigitRuns(n), candidates
}

// passPrefixThe (P3): prefix n with "The "; candidates unchanged.
func passPrefixThe(n string, candidates []sanitizedCandidate) (string, []sanitizedCandidate) {
	return "The " + n, candidates
}

// passAmpersand (P4): in n, replace " and " with " & "; candidates unchanged.
func passAmpersand(n string, candidates []sanitizedCandidate) (string, []sanitizedCandidate) {
	return andWord.ReplaceAllString(n, " & "), candidates
}

// passStripApostrophes (P5): strip every ' from every candidate name;
// n unchanged.
func passStripApostrophes(n string, candidates []sanitizedCandidate) (string, []sanitizedCandidate) {
	out := make([]sanitizedCandidate, len(candidates))
	for i, c := range candidates {
		out[i] = sanitizedCandidate{sanitizedName: strings.ReplaceAll(c.sanitizedName, "'", ""), game: c.game}
	}
	return n, out
}

// passCollapseColonDash (P6): in both n and every candidate name, replace
// runs of ':' or '-' (with surrounding space) with a single space.
func passCollapseColonDash(n string, candidates []sanitizedCandidate) (string, []sanitizedCandidate) {
	out := make([]sanitizedCandidate, len(candidates))
	for i, c := range candidates {
		out[i] = sanitizedCandidate{sanitizedName: colonOrDash.ReplaceAllString(c.sanitizedName, " "), game: c.game}
	}
	return colonOrDash.ReplaceAllString(n, " "), out
}

// passSubtitleTrim (P7): return the first result whose name contains ':'
// and whose pre-colon segment equals n case-insensitively.
func passSubtitleTrim(n string, candidates []sanitizedCandidate) *domain.Game {
	for _, c := range candidates {
		idx := strings.Index(c.sanitizedName, ":")
		if idx < 0 {
			continue
		}
		prefix := strings.TrimSpace(c.sanitizedName[:idx])
		if strings.EqualFold(prefix, n) {
			return c.game
		}
	}
	return nil
}

// resolveEquality evaluates case-insensitive equality between n and every
// candidate's (transformed) name, forming the set M, then applies the
// tie-break rule of §4.5.3.
func resolveEquality(candidates []sanitizedCandidate, n string, releaseYear int) *domain.Game {
	var matches []sanitizedCandidate
	for _, c := range candidates {
		if strings.EqualFold(c.sanitizedName, n) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return nil
	case 1:
		return matches[0].game
	}

	if releaseYear > 0 {
		for _, c := range matches {
			if releaseYearOf(c.game) == releaseYear {
				return c.game
			}
		}
		return nil
	}

	allZero := true
	for _, c := range matches {
		if c.game.FirstReleaseDate != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return matches[0].game
	}

	earliest := matches[0]
	found := false
	for _, c := range matches {
		if c.game.FirstReleaseDate <= 0 {
			continue
		}
		if !found || c.game.FirstReleaseDate < earliest.game.FirstReleaseDate {
			earliest = c
			found = true
		}
	}
	if found {
		return earliest.game
	}
	return matches[0].game
}

func releaseYearOf(g *domain.Game) int {
	if g.FirstReleaseDate == 0 {
		return 0
	}
	return time.Unix(g.FirstReleaseDate, 0).UTC().Year()
}
