package api

import (
	"context"
)

// UserStats is the dashboard's account-level stats response. Only the
// fields the monitor needs are declared; unknown fields are ignored.
type UserStats struct {
	PointsToday int64 `json:"points_today"`
	Heartbeats  int64 `json:"heartbeats"`
}

// GetUserStats fetches the account stats shown on the dashboard.
func (c *Client) GetUserStats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.get(ctx, "/api/users/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
