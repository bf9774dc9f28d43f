package patterns

import "regexp"

// Year matches a standalone 4-digit year between 1921 and 2159. 1920 is
// excluded because of 1920x1080 and 2160 because of 2160p. The leading
// [^/]+ forbids a match at the start of the input or right after a path
// separator, so a bare year token never reads as a title boundary.
var Year = regexp.MustCompile(`[^/]+\b(?P<year>192[1-9]|19[3-9][0-9]|20[0-9][0-9]|21[0-5][0-9])\b`)

// Resolution matches 720p, 1080p, or 2160p with an optional trailing p,
// or 4K. Normalization to the canonical "2160p" form happens in the parser.
var Resolution = regexp.MustCompile(`(?i)\b(?P<resolution>(?:(?:72|108|216)0p?)|4K)\b`)

// Media matches the source media tag. Alternation order encodes precedence:
// bluray > webdl > hdtv > dvd > sdtv.
var Media = regexp.MustCompile(`(?i)\b(?:(?P<bluray>blu-?ray|bdremux|bdrip)|(?P<webdl>web-?dl|webrip|amzn|nf|hulu|dsnp|atvp)|(?P<hdtv>hdtv)|(?P<dvd>dvd)|(?P<sdtv>sdtv))\b`)

// Proper matches the release tag "proper", but only when a 4-digit sequence
// appears somewhere earlier in the string. Untagged uses of the word do not
// follow a year and are ignored.
var Proper = regexp.MustCompile(`(?i)[0-9]{4}.*?\b(?P<proper>proper)\b`)

// HDR matches a standalone hdr token.
var HDR = regexp.MustCompile(`(?i)\b(?P<hdr>hdr)\b`)

// Part matches "part" followed by optional punctuation and an integer or a
// Roman numeral in subtractive notation (I through MMMCMXCIX).
var Part = regexp.MustCompile(`(?i)\bpart\W?(?P<part>\d+|M{0,4}(?:CM|CD|D?C{0,3})(?:XC|XL|L?X{0,3})(?:IX|IV|V?I{0,3}))`)

// StripFromTitle matches characters that should be replaced with a space in
// a title: periods, underscores, middle dots, and bracket pairs anywhere,
// plus any trailing run of non-word characters and whitespace.
var StripFromTitle = regexp.MustCompile(`[._·\[\]{}()]|[\s\W]+$`)

// TrailingThe matches the ", the" suffix form used for sort order so it can
// be restored to a leading "The ".
var TrailingThe = regexp.MustCompile(`(?i), the`)
