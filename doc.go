// Package pilot is a navigation coordinator for Bubble Tea applications.
//
// A Coordinator owns one navigation context: the push stack above a root
// destination, two single-occupancy modal slots (sheet and full-screen
// cover), the dismissal callbacks attached to each entry, and an optional
// link to the parent context it was presented from.
//
// Allowed here:
//   - destination identity, type erasure and kind queries
//   - coordinator stack/modal state and dismissal callback bookkeeping
//   - parent/child delegation for dismissal
//   - change notification contracts (Publisher)
//
// Not allowed here:
//   - concrete view rendering or overlay compositing (see package tui)
//   - application wiring, key routing, configuration (see cmd, internal)
//
// # Basic usage
//
//	type Detail struct{ ID string; Item string }
//
//	func (d Detail) DestinationID() string { return d.ID }
//	func (d Detail) MakeView() tea.Model   { return newDetailModel(d.Item) }
//
//	coord := pilot.New(Home{ID: pilot.NewID()})
//	coord.Push(Detail{ID: pilot.NewID(), Item: "first"}, nil)
//	coord.Present(Settings{ID: pilot.NewID()}, nil, func() {
//	    // runs exactly once when the sheet is dismissed
//	})
//	coord.Pop(pilot.Back())
//
// All operations are confined to the UI thread. Dismissal callbacks run
// synchronously before the triggering operation returns, and always see
// the fully-updated coordinator state.
package pilot
