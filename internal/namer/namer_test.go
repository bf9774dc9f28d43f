package namer

import (
	"path/filepath"
	"testing"

	"filmsort/internal/parser"
)

func testParser(t *testing.T) *parser.Parser {
	t.Helper()
	p, err := parser.New(parser.Config{
		Editions: []parser.EditionRule{
			{Search: `special[\W_]*edition`, Replace: "Special Edition"},
			{Search: `unrated`, Replace: "Unrated"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDestinationPath(t *testing.T) {
	n := New("/library")
	attrs := parser.Attributes{
		Title:      "Rogue One A Star Wars Story",
		Year:       2016,
		Resolution: "1080p",
		Media:      parser.MediaBluray,
		Proper:     true,
	}
	got := n.DestinationPath(attrs, "/downloads/rogue.one.2016.mkv")
	want := filepath.Join("/library",
		"Rogue One A Star Wars Story (2016)",
		"Rogue One A Star Wars Story (2016) Bluray-1080p Proper.mkv")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestFileNameSegmentsOmittedWhenAbsent(t *testing.T) {
	n := New("/library")
	cases := []struct {
		name  string
		attrs parser.Attributes
		want  string
	}{
		{
			name:  "title and year only",
			attrs: parser.Attributes{Title: "Heat", Year: 1995},
			want:  "Heat (1995).mkv",
		},
		{
			name:  "no year",
			attrs: parser.Attributes{Title: "Heat", Resolution: "1080p"},
			want:  "Heat 1080p.mkv",
		},
		{
			name:  "media without resolution",
			attrs: parser.Attributes{Title: "Heat", Year: 1995, Media: parser.MediaDVD},
			want:  "Heat (1995) DVD.mkv",
		},
		{
			name: "everything",
			attrs: parser.Attributes{
				Title: "Heat", Year: 1995, Edition: "Special Edition",
				Resolution: "2160p", Media: parser.MediaWebDL,
				HDR: true, Proper: true, Part: "II",
			},
			want: "Heat (1995) Special Edition WEBDL-2160p HDR Proper Part II.mkv",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.FileName(tc.attrs, ".mkv"); got != tc.want {
				t.Errorf("file name = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSanitizeIllegalCharacters(t *testing.T) {
	n := New("/library")
	attrs := parser.Attributes{Title: "Mission: Impossible", Year: 1996}
	if got := n.FolderName(attrs); got != "Mission - Impossible (1996)" {
		t.Errorf("folder = %q", got)
	}
	attrs = parser.Attributes{Title: `What/If*?`, Year: 2020}
	if got := n.FolderName(attrs); got != "What-If (2020)" {
		t.Errorf("folder = %q", got)
	}
}

func TestEmptyTitleFallsBackToUnknown(t *testing.T) {
	n := New("/library")
	if got := n.FolderName(parser.Attributes{Year: 2020}); got != "Unknown (2020)" {
		t.Errorf("folder = %q", got)
	}
}

// Rendered names must parse back to the attributes they encode.
func TestRoundTrip(t *testing.T) {
	p := testParser(t)
	n := New("/library")
	cases := []parser.Attributes{
		{Title: "Heat", Year: 1995, Resolution: "1080p", Media: parser.MediaBluray},
		{Title: "Arrival", Year: 2016, Resolution: "2160p", Media: parser.MediaWebDL, HDR: true},
		{Title: "Aliens", Year: 1986, Edition: "Special Edition", Resolution: "1080p", Media: parser.MediaBluray},
		{Title: "The Godfather", Year: 1972, Resolution: "1080p", Media: parser.MediaBluray, Part: "II"},
		{Title: "Heat", Year: 1995, Resolution: "720p", Media: parser.MediaHDTV, Proper: true},
		{Title: "2001 A Space Odyssey", Year: 1968, Resolution: "1080p", Media: parser.MediaBluray},
	}
	for _, want := range cases {
		path := n.DestinationPath(want, "/src/file.mkv")
		got := p.Parse(path)
		if got != want {
			t.Errorf("round trip of %q:\n got  %+v\n want %+v", path, got, want)
		}
	}
}
