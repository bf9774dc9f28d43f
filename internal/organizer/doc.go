// Package organizer coordinates one organize run end to end: source
// scanning, attribute parsing, destination naming, the transfer itself, and
// ledger bookkeeping, all under a single-instance lock.
//
// Keep orchestration logic here: parsing lives in parser, transfer mechanics
// in fileops, and persistence in library.
package organizer
