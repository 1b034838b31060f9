// Package status publishes periodic state snapshots to a display sink.
//
// The publisher runs on its own ticker, reads only in-memory state (the
// supervisor's state and the session metrics), and never touches the
// network. A failing sink is logged and skipped; publishing problems
// cannot stall or crash the supervisor.
package status
