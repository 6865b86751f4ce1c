// Package tui renders a pilot coordinator's state into a Bubble Tea
// program: the root destination, the push stack, and the sheet and
// full-screen modal overlays.
//
// Allowed here:
//   - lazy view instantiation and message routing to the visible screen
//   - overlay compositing for sheet presentations
//   - construction of child coordinators for modals with nested
//     navigation
//
// Not allowed here:
//   - coordinator state transitions (package pilot owns those)
//   - application-specific screens or wiring (see cmd)
package tui
