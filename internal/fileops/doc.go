// Package fileops implements the safe transfer engine: moving or copying a
// media file to its destination without ever exposing a partially written
// file under the destination's final name.
//
// Same-volume moves use an atomic rename. Cross-volume moves, and any move
// under the safe-copy policy, stream through a ".partial~" staging file that
// is renamed over the destination only after the copy has been verified, and
// is deleted on every failure path. Replacement of an existing destination
// is governed by an explicit duplicate policy; the engine never compares
// content, only declared sizes and the caller's upgrade assertion.
package fileops
