package shared

import "time"

// RateLimitResult is the state of one client's window after counting a request.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetIn   time.Duration
}
