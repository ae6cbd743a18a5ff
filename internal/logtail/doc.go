// Package logtail reads log files for the console feeders.
//
// # Overview
//
// Two reading modes are provided:
//
//  1. Tail: extract the last N lines of a file as a backfill
//  2. ReadFrom: return only the complete lines appended since a byte offset
//
// Tail uses a ring buffer of size maxLines, so memory stays O(maxLines) no
// matter how large the file is. It also returns the offset just past the
// lines it saw, which is where following should continue:
//
//	lines, offset, err := logtail.Tail("/var/log/app.log", 400)
//
// ReadFrom is meant to be polled. It returns the offset to resume from and
// holds back a trailing partial line until its newline arrives. If the file
// shrinks (rotation by truncation) reading restarts at the beginning:
//
//	lines, next, err := logtail.ReadFrom(path, offset)
//
// # Classifying Lines
//
// Parse sniffs a severity word (TRACE, DEBUG, INFO, WARN, ERROR, ...) and the
// first [bracketed] component from a raw line. Missing files are not errors;
// they read as empty.
package logtail
