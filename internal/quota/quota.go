// Package quota enforces the cap on new games per player per day.
package quota

import "errors"

// DailyGameLimit is how many games a player may start per UTC
// calendar day.
const DailyGameLimit = 3

// ErrDailyLimitReached is the rejection once the cap is hit. It is an
// expected outcome, not a fault.
var ErrDailyLimitReached = errors.New("daily game limit reached")

// Guard decides whether a player may start another game today.
type Guard struct {
	Limit int
}

// NewGuard returns a Guard carrying the standard daily limit.
func NewGuard() Guard { return Guard{Limit: DailyGameLimit} }

// Allow reports whether a player who already started the given number
// of games today may start one more.
func (g Guard) Allow(started int) bool { return started < g.Limit }
