// Package ui is the terminal presentation surface for the console.
//
// The console produces an HTML document; Surface implements console.Surface by
// parsing that document with goquery into rows and forwarding the changes to a
// Bubble Tea program. The Model draws the rows in a viewport between a header
// carrying the Clear and Save buttons and a status bar.
//
// # Threading
//
// The console calls Surface while holding its own lock, and Surface blocks in
// tea.Program.Send until the event loop takes the message. The Model therefore
// never calls the console from Update; every console operation (MarkReady,
// Clear, Save, timestamp and palette changes, statistics) runs as a tea.Cmd.
//
// # Scrolling
//
// Scroll state lives in the viewport. User-driven moves are mirrored into the
// Surface so the console can tell whether the view is pinned to the bottom;
// console-driven moves arrive as scrollMsg.
//
// # Readiness
//
// The first tea.WindowSizeMsg marks the console ready. Until then Log calls block.
package ui
