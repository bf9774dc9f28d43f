// Package services defines the shared error taxonomy used across filmsort.
//
// Stages wrap failures with Wrap so callers can classify outcomes with
// errors.Is against the exported sentinels while still reading a full
// stage/operation/message chain in logs.
package services
