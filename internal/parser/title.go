package parser

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"filmsort/internal/patterns"
)

// Title derives a clean film title from the source path.
//
// The pipeline prefers the containing folder over the file name when the
// folder itself parses to a year or resolution (folder names tend to be
// cleaner than deeply-tagged filenames), then strips the extension, release
// prefixes, the strip-character set, the matched edition, media and
// resolution tags, everything after the year token, and finally restores
// configured keep-period strings and collapses whitespace.
func (p *Parser) Title(path string) string {
	folder, file := splitSource(path)

	title := file
	if folder != "" && (p.Year(folder) != 0 || p.Resolution(folder) != "") {
		title = folder
	}

	title = strings.TrimSuffix(title, filepath.Ext(title))
	title = p.stripPrefix(title)
	title = restoreLeadingThe(title)
	title = patterns.StripFromTitle.ReplaceAllString(title, " ")

	if match, ok := p.ResolveEdition(path); ok {
		title = match.Pattern.ReplaceAllString(title, "")
	}

	title = patterns.Media.ReplaceAllString(title, "")
	title = patterns.Resolution.ReplaceAllString(title, "")

	// Release names almost universally place the year between the title and
	// the remaining tags, so everything after the year is discarded.
	if year := p.Year(path); year != 0 {
		title, _, _ = strings.Cut(title, strconv.Itoa(year))
	}

	title = p.restoreKeepPeriods(title)
	return collapseWhitespace(title)
}

// stripPrefix removes configured release-group prefixes from the start of
// the title, case-insensitively, in declared order.
func (p *Parser) stripPrefix(title string) string {
	for _, prefix := range p.stripPrefixes {
		if prefix == "" {
			continue
		}
		if len(title) >= len(prefix) && strings.EqualFold(title[:len(prefix)], prefix) {
			title = title[len(prefix):]
		}
	}
	return title
}

// restoreLeadingThe converts the ", The" sort-order suffix back to a leading
// article, so "Matrix, The" becomes "The Matrix".
func restoreLeadingThe(title string) string {
	if !patterns.TrailingThe.MatchString(title) {
		return title
	}
	return "The " + patterns.TrailingThe.ReplaceAllString(title, "")
}

// restoreKeepPeriods re-inserts configured exception strings such as
// "S.W.A.T" whose periods the general stripping pass replaced with spaces.
func (p *Parser) restoreKeepPeriods(title string) string {
	for _, keep := range p.keepPeriods {
		title = keep.re.ReplaceAllLiteralString(title, keep.literal)
	}
	return title
}

// compileKeepPeriod builds a matcher that recognizes a keep-period string in
// both its original form and its space-stripped form.
func compileKeepPeriod(keep string) (*regexp.Regexp, error) {
	segments := strings.FieldsFunc(keep, func(r rune) bool { return r == '.' })
	for i, segment := range segments {
		segments[i] = regexp.QuoteMeta(segment)
	}
	return regexp.Compile(`(?i)\b` + strings.Join(segments, `[.\s]?`) + `\b`)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
