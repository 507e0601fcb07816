package auth

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// expiryPattern accepts a number with an optional unit, e.g. "1d", "12h",
// "90 minutes", "2.5 hrs". A bare number is milliseconds.
var expiryPattern = regexp.MustCompile(`(?i)^(\d*\.?\d+) *(milliseconds?|msecs?|ms|seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w|years?|yrs?|y)?$`)

const (
	day  = 24 * time.Hour
	week = 7 * day
	year = time.Duration(365.25 * float64(day))
)

// ParseExpiry converts an expiry string to a positive duration.
func ParseExpiry(s string) (time.Duration, error) {
	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid expiry %q", s)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry %q: %w", s, err)
	}

	var unit time.Duration
	switch strings.ToLower(m[2]) {
	case "", "milliseconds", "millisecond", "msecs", "msec", "ms":
		unit = time.Millisecond
	case "seconds", "second", "secs", "sec", "s":
		unit = time.Second
	case "minutes", "minute", "mins", "min", "m":
		unit = time.Minute
	case "hours", "hour", "hrs", "hr", "h":
		unit = time.Hour
	case "days", "day", "d":
		unit = day
	case "weeks", "week", "w":
		unit = week
	case "years", "year", "yrs", "yr", "y":
		unit = year
	}

	d := time.Duration(n * float64(unit))
	if d <= 0 {
		return 0, fmt.Errorf("expiry %q must be positive", s)
	}
	return d, nil
}
