// Package model defines shared data types used across the Teneo node monitor.
//
// Conventions:
//   - Latencies: time.Duration
//   - Timestamps: time.Time, local clock
//   - IDs: uuid.UUID for session IDs (one per connected period)
package model
