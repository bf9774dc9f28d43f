// Package parser extracts structured film attributes from messy release
// names: title, year, resolution, source media, edition, part number, and
// the HDR and proper flags.
//
// Every extractor is a pure, total function of the input path string. A
// missing value is a zero value, never an error, and no extractor consults
// the filesystem. The configuration tables (prefix strip list, keep-period
// exceptions, edition aliases) are compiled once at construction and the
// resulting Parser is safe for concurrent use.
package parser
