package patterns

import "testing"

func TestYearBounds(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Movie.1921.mkv", "1921"},
		{"Movie.2159.mkv", "2159"},
		{"Movie.1999.mkv", "1999"},
		{"Movie.1920.mkv", ""},
		{"Movie.2160.mkv", ""},
		{"Movie.1080p.mkv", ""},
		{"Movie.1920x1080.mkv", ""},
	}
	for _, tc := range cases {
		match := Year.FindStringSubmatch(tc.input)
		got := ""
		if match != nil {
			got = match[Year.SubexpIndex("year")]
		}
		if got != tc.want {
			t.Errorf("Year(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestYearNotAtStart(t *testing.T) {
	if Year.MatchString("1999") {
		t.Error("bare year at string start should not match")
	}
	if Year.MatchString("/1999.mkv") {
		t.Error("year directly after separator should not match")
	}
	if !Year.MatchString("x/Movie 1999") {
		t.Error("year after title text should match")
	}
}

func TestMediaPrecedenceGroups(t *testing.T) {
	match := Media.FindStringSubmatch("Some.Movie.BDRip.mkv")
	if match == nil || match[Media.SubexpIndex("bluray")] == "" {
		t.Fatalf("BDRip should match the bluray group, got %v", match)
	}
	match = Media.FindStringSubmatch("Some.Movie.AMZN.WEBRip.mkv")
	if match == nil || match[Media.SubexpIndex("webdl")] == "" {
		t.Fatalf("AMZN should match the webdl group, got %v", match)
	}
}

func TestProperRequiresPrecedingDigits(t *testing.T) {
	if Proper.MatchString("A.Proper.Movie.mkv") {
		t.Error("proper without preceding 4-digit run should not match")
	}
	if !Proper.MatchString("Movie.2016.PROPER.mkv") {
		t.Error("proper after a year should match")
	}
}

func TestHDRWordBoundary(t *testing.T) {
	if HDR.MatchString("behdrind.mkv") {
		t.Error("hdr inside a word should not match")
	}
	if !HDR.MatchString("Movie.2160p.HDR.mkv") {
		t.Error("standalone HDR token should match")
	}
}

func TestPartGrammar(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Movie.Part.2.mkv", "2"},
		{"Movie Part II", "II"},
		{"Movie.Part.XIV.mkv", "XIV"},
		{"Harry Potter Part 1", "1"},
	}
	for _, tc := range cases {
		match := Part.FindStringSubmatch(tc.input)
		got := ""
		if match != nil {
			got = match[Part.SubexpIndex("part")]
		}
		if got != tc.want {
			t.Errorf("Part(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestStripFromTitle(t *testing.T) {
	got := StripFromTitle.ReplaceAllString("Rogue.One_[2016]{x}(y)", " ")
	want := "Rogue One  2016  x  y "
	if got != want {
		t.Errorf("strip = %q, want %q", got, want)
	}
}
