// Package patterns holds the compiled regular expressions shared by the
// release-name parser. The patterns are pure data: no runtime state, no
// configuration, word-boundary delimited and case-insensitive unless a
// pattern documents otherwise.
package patterns
