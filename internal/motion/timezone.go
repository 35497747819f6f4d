package motion

import (
	"strconv"
	"strings"
	"time"

	"layerstage/internal/logging"
)

// ParseTimezone parses offsets written like "UTC", "UTC+8", "UTC-05:30"
// into a duration from UTC. Unparseable input logs a warning and falls
// back to UTC; a bad timezone must never take a layer down.
func ParseTimezone(s string) time.Duration {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if raw == "" || raw == "UTC" || raw == "GMT" {
		return 0
	}

	rest := raw
	switch {
	case strings.HasPrefix(raw, "UTC"):
		rest = raw[3:]
	case strings.HasPrefix(raw, "GMT"):
		rest = raw[3:]
	}
	if rest == "" {
		return 0
	}

	sign := time.Duration(1)
	switch rest[0] {
	case '+':
		rest = rest[1:]
	case '-':
		sign = -1
		rest = rest[1:]
	default:
		logging.Logger().Warn("motion: malformed timezone, using UTC", "timezone", s)
		return 0
	}

	hoursPart := rest
	minutesPart := ""
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		hoursPart, minutesPart = rest[:i], rest[i+1:]
	}

	hours, err := strconv.Atoi(hoursPart)
	if err != nil || hours < 0 || hours > 14 {
		logging.Logger().Warn("motion: malformed timezone, using UTC", "timezone", s)
		return 0
	}
	minutes := 0
	if minutesPart != "" {
		minutes, err = strconv.Atoi(minutesPart)
		if err != nil || minutes < 0 || minutes > 59 {
			logging.Logger().Warn("motion: malformed timezone, using UTC", "timezone", s)
			return 0
		}
	}

	return sign * (time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}
