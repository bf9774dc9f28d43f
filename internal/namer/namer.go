// Package namer renders parsed film attributes into the canonical library
// layout: one folder per film, one file per copy, every extracted attribute
// re-derivable from the rendered name.
package namer

import (
	"path/filepath"
	"strconv"
	"strings"

	"filmsort/internal/parser"
)

// Namer formats destination paths under a fixed library root.
type Namer struct {
	root string
}

func New(root string) *Namer {
	return &Namer{root: root}
}

// Root returns the library root the namer was built with.
func (n *Namer) Root() string {
	return n.root
}

// FolderName renders the per-film directory, "Title (Year)", omitting the
// year segment when none was extracted.
func (n *Namer) FolderName(attrs parser.Attributes) string {
	base := sanitize(attrs.Title)
	if base == "" {
		base = "Unknown"
	}
	if attrs.Year > 0 {
		base += " (" + strconv.Itoa(attrs.Year) + ")"
	}
	return base
}

// FileName renders the file name for one copy of a film. Attribute segments
// appear in a fixed order so that parsing the rendered name reproduces the
// attributes: edition, media and resolution joined by a dash, HDR, Proper,
// then the part designation.
func (n *Namer) FileName(attrs parser.Attributes, ext string) string {
	segments := []string{n.FolderName(attrs)}
	if attrs.Edition != "" {
		segments = append(segments, sanitize(attrs.Edition))
	}
	if quality := qualitySegment(attrs); quality != "" {
		segments = append(segments, quality)
	}
	if attrs.HDR {
		segments = append(segments, "HDR")
	}
	if attrs.Proper {
		segments = append(segments, "Proper")
	}
	if attrs.Part != "" {
		segments = append(segments, "Part "+attrs.Part)
	}
	return strings.Join(segments, " ") + strings.ToLower(ext)
}

// DestinationPath renders the full destination for a source file, carrying
// over the source's extension.
func (n *Namer) DestinationPath(attrs parser.Attributes, srcPath string) string {
	return filepath.Join(n.root, n.FolderName(attrs), n.FileName(attrs, filepath.Ext(srcPath)))
}

func qualitySegment(attrs parser.Attributes) string {
	label := attrs.Media.Label()
	switch {
	case label != "" && attrs.Resolution != "":
		return label + "-" + attrs.Resolution
	case label != "":
		return label
	default:
		return attrs.Resolution
	}
}

var sanitizer = strings.NewReplacer(
	"/", "-",
	`\`, "-",
	":", " -",
	"*", "",
	"?", "",
	`"`, "",
	"<", "",
	">", "",
	"|", "",
)

// sanitize removes characters that are illegal or hostile in file names and
// normalizes the surrounding whitespace.
func sanitize(s string) string {
	s = strings.Join(strings.Fields(sanitizer.Replace(s)), " ")
	return strings.TrimRight(s, ". ")
}
