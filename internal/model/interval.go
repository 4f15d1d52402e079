package model

import (
	"fmt"
	"strings"
)

// Interval is the bar granularity in the host platform's enumeration.
type Interval string

const (
	Minute Interval = "1m"
	Hour   Interval = "1h"
	Daily  Interval = "d"
	Weekly Interval = "w"
	Tick   Interval = "tick"
)

// ParseInterval accepts the enum value or a long name (minute, hour, daily, weekly, tick).
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1m", "minute":
		return Minute, nil
	case "1h", "hour", "60m":
		return Hour, nil
	case "d", "1d", "daily", "day":
		return Daily, nil
	case "w", "1w", "weekly", "week":
		return Weekly, nil
	case "tick":
		return Tick, nil
	default:
		return "", fmt.Errorf("unknown interval %q", s)
	}
}
