package config

const (
	defaultSourceDir          = "~/downloads"
	defaultLibraryDir         = "~/library/movies"
	defaultLogDir             = "~/.local/share/filmsort/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultMinSizeMB          = 200
	defaultPartialMaxAgeHours = 24
)

func defaultExtensions() []string {
	return []string{".mkv", ".mp4", ".avi", ".m2ts", ".ts"}
}

// defaultEditions is the built-in edition alias table. Order matters: the
// first matching rule wins, so specific aliases come before the broad ones
// they would otherwise be shadowed by.
func defaultEditions() []EditionRule {
	return []EditionRule{
		{Search: `extended[\W_]*director[\W_]*s[\W_]*cut`, Replace: "Extended Director's Cut"},
		{Search: `director[\W_]*s[\W_]*cut`, Replace: "Director's Cut"},
		{Search: `extended[\W_]*(?:cut|edition)`, Replace: "Extended Edition"},
		{Search: `ultimate[\W_]*edition`, Replace: "Ultimate Edition"},
		{Search: `(\d+(?:th|st|nd|rd))[\W_]*anniversary[\W_]*edition`, Replace: "${1} Anniversary Edition"},
		{Search: `special[\W_]*edition`, Replace: "Special Edition"},
		{Search: `collector[\W_]*s[\W_]*edition`, Replace: "Collector's Edition"},
		{Search: `criterion[\W_]*(?:collection|edition)?`, Replace: "Criterion Collection"},
		{Search: `theatrical[\W_]*(?:cut|edition)`, Replace: "Theatrical Cut"},
		{Search: `final[\W_]*cut`, Replace: "Final Cut"},
		{Search: `remastered`, Replace: "Remastered"},
		{Search: `unrated`, Replace: "Unrated"},
		{Search: `uncut`, Replace: "Uncut"},
		{Search: `imax`, Replace: "IMAX"},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDirs: []string{defaultSourceDir},
			LibraryDir: defaultLibraryDir,
			LogDir:     defaultLogDir,
		},
		Parser: Parser{
			Editions: defaultEditions(),
		},
		Transfer: Transfer{
			PartialMaxAgeHours: defaultPartialMaxAgeHours,
		},
		Scan: Scan{
			Extensions: defaultExtensions(),
			MinSizeMB:  defaultMinSizeMB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
