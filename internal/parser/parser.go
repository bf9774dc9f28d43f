package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"filmsort/internal/patterns"
)

// Media identifies the source media of a release.
type Media string

const (
	MediaBluray  Media = "bluray"
	MediaWebDL   Media = "webdl"
	MediaHDTV    Media = "hdtv"
	MediaDVD     Media = "dvd"
	MediaSDTV    Media = "sdtv"
	MediaUnknown Media = "unknown"
)

// Label returns the display form used when composing destination names.
func (m Media) Label() string {
	switch m {
	case MediaBluray:
		return "Bluray"
	case MediaWebDL:
		return "WEBDL"
	case MediaHDTV:
		return "HDTV"
	case MediaDVD:
		return "DVD"
	case MediaSDTV:
		return "SDTV"
	default:
		return ""
	}
}

// Attributes is the full extraction result for one source path. Absent
// optional values are represented by zero values: Year 0, empty strings.
type Attributes struct {
	Title      string
	Year       int
	Resolution string
	Media      Media
	Edition    string
	Part       string
	HDR        bool
	Proper     bool
}

// EditionRule pairs a search pattern with its canonical replacement. Rules
// are evaluated in declared order and the first match wins, so more specific
// aliases must be listed before broader ones.
type EditionRule struct {
	Search  string
	Replace string
}

// Config carries the tables the parser needs. It is threaded explicitly so
// tests can run distinct parsers with distinct tables.
type Config struct {
	StripPrefixes []string
	KeepPeriods   []string
	Editions      []EditionRule
}

// Parser extracts film attributes from release names. All methods are pure
// functions of their input string; a Parser is safe for concurrent use.
type Parser struct {
	stripPrefixes []string
	keepPeriods   []keepPeriod
	editions      []editionRule
}

type keepPeriod struct {
	re      *regexp.Regexp
	literal string
}

type editionRule struct {
	re      *regexp.Regexp
	replace string
}

// New compiles the configured tables into a Parser.
func New(cfg Config) (*Parser, error) {
	p := &Parser{stripPrefixes: append([]string(nil), cfg.StripPrefixes...)}

	for _, keep := range cfg.KeepPeriods {
		re, err := compileKeepPeriod(keep)
		if err != nil {
			return nil, fmt.Errorf("keep-period entry %q: %w", keep, err)
		}
		p.keepPeriods = append(p.keepPeriods, keepPeriod{re: re, literal: keep})
	}

	for _, rule := range cfg.Editions {
		re, err := regexp.Compile(`(?i)\b(?:` + rule.Search + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("edition pattern %q: %w", rule.Search, err)
		}
		p.editions = append(p.editions, editionRule{re: re, replace: rule.Replace})
	}

	return p, nil
}

// Parse runs every extractor against the source path.
func (p *Parser) Parse(path string) Attributes {
	return Attributes{
		Title:      p.Title(path),
		Year:       p.Year(path),
		Resolution: p.Resolution(path),
		Media:      p.Media(path),
		Edition:    p.Edition(path),
		Part:       p.Part(path),
		HDR:        p.IsHDR(path),
		Proper:     p.IsProper(path),
	}
}

// Year returns the release year, or 0 when none is found. When multiple
// year tokens are present the right-most match wins, so titles that are
// themselves years (2001: A Space Odyssey) are not misread.
func (p *Parser) Year(path string) int {
	matches := patterns.Year.FindAllStringSubmatch(searchText(path), -1)
	if len(matches) == 0 {
		return 0
	}
	idx := patterns.Year.SubexpIndex("year")
	year, err := strconv.Atoi(matches[len(matches)-1][idx])
	if err != nil {
		return 0
	}
	return year
}

// Resolution returns the canonical resolution token (720p, 1080p, or 2160p),
// or the empty string when none is found.
func (p *Parser) Resolution(path string) string {
	match := patterns.Resolution.FindStringSubmatch(searchText(path))
	if match == nil {
		return ""
	}
	resolution := strings.ToLower(match[patterns.Resolution.SubexpIndex("resolution")])
	if resolution == "4k" {
		resolution = "2160p"
	}
	if !strings.Contains(resolution, "p") {
		resolution += "p"
	}
	return resolution
}

// Media returns the source media, or MediaUnknown when no tag is present.
func (p *Parser) Media(path string) Media {
	match := patterns.Media.FindStringSubmatch(searchText(path))
	if match == nil {
		return MediaUnknown
	}
	for _, candidate := range []Media{MediaBluray, MediaWebDL, MediaHDTV, MediaDVD, MediaSDTV} {
		if match[patterns.Media.SubexpIndex(string(candidate))] != "" {
			return candidate
		}
	}
	return MediaUnknown
}

// IsHDR reports whether the name carries a standalone hdr token.
func (p *Parser) IsHDR(path string) bool {
	return patterns.HDR.MatchString(searchText(path))
}

// IsProper reports whether the name carries a proper release tag. The token
// only counts when a 4-digit sequence appears earlier in the string.
func (p *Parser) IsProper(path string) bool {
	return patterns.Proper.MatchString(searchText(path))
}

// Part returns the upper-cased part number (integer or Roman numeral), or
// the empty string when none is found.
func (p *Parser) Part(path string) string {
	match := patterns.Part.FindStringSubmatch(searchText(path))
	if match == nil {
		return ""
	}
	return strings.ToUpper(match[patterns.Part.SubexpIndex("part")])
}

// splitSource returns the file name and its containing folder name. The
// folder is empty when the path has no meaningful parent.
func splitSource(path string) (folder, file string) {
	if path == "" {
		return "", ""
	}
	file = filepath.Base(path)
	folder = filepath.Base(filepath.Dir(path))
	if folder == "." || folder == string(filepath.Separator) {
		folder = ""
	}
	return folder, file
}

// searchText joins folder and file with a separator so patterns that forbid
// matches at the input boundary treat the folder and file starts uniformly.
func searchText(path string) string {
	folder, file := splitSource(path)
	return folder + "/" + file
}
