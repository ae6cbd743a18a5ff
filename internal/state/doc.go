// Package state provides thread-safe feeder state for the console UI.
//
// # Overview
//
// Feeders (one per followed log file) report each poll to a Store; the UI
// reads Snapshots on its own tick to draw the status bar. The Store is the
// only coordination point between them.
//
//	Producer (feeder):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ ReadFrom()     │            │                 │
//	│ console.Log()  │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	└────────────────┘  (mutex)   └─────────────────┘
//
// # Update Semantics
//
// A successful Update adds to the source's line count and clears its error.
// A failed Update keeps the count, records the error and increments
// ConsecutiveFailures; two or more in a row mark the source as failing.
//
// Snapshot returns sources sorted by name, copied so callers may modify them.
// The zero Store is ready to use.
package state
