// Package metrics accumulates session statistics for the node monitor.
//
// Session is pure lock-protected state: the supervisor's event path writes
// to it and the status publisher reads from it. Nothing here performs I/O,
// starts timers, or blocks.
//
// Key invariants:
//   - PointsTotal never decreases across reconnects
//   - The latency ring holds at most its fixed capacity, oldest evicted first
package metrics
