// Package app is the composition root of the console application.
//
// Run loads the configuration and preferences, opens the diagnostic zap logger,
// builds the console and its terminal surface, starts one Follower per followed
// file (plus the demo traffic generator when asked) and runs the UI until the
// user quits or the context is cancelled. Feeders are stopped and waited for
// before Run returns.
//
// A Follower waits for the console to become ready, backfills the tail of its
// file and then polls for appended lines. Each line's severity and component
// are sniffed by logtail.Parse. Read errors back off exponentially up to
// maxBackoff and are reported through state.Store.
package app
