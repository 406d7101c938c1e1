package service

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ddenisova/targbulk/internal/constant"
)

var dateLayouts = []string{constant.DATE_FORMAT_SHORT, constant.DATE_FORMAT_LONG}

// parseDay interprets the uploaded day/month/year string as local
// midnight in loc. Two-digit years are tried first, then four-digit.
func parseDay(raw string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized date %q", trimmed)
}

// ParseDayStart returns the UTC instant of local midnight of the
// given day.
func ParseDayStart(raw string, loc *time.Location) (time.Time, error) {
	t, err := parseDay(raw, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseDayEnd returns the UTC instant of local 23:59:59 of the given
// day. Sub-second precision stays zero; it is never set from input.
func ParseDayEnd(raw string, loc *time.Location) (time.Time, error) {
	t, err := parseDay(raw, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc).UTC(), nil
}

// PurgeWindow converts the inclusive from/to day strings into the UTC
// bounds the event query expects. The upper bound lands on local
// 23:59:59.999999 so nothing scheduled late on the last day escapes.
func PurgeWindow(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	since, err := ParseDayStart(from, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "start of range")
	}
	day, err := parseDay(to, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "end of range")
	}
	upTo := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999999000, loc).UTC()
	if upTo.Before(since) {
		return time.Time{}, time.Time{}, errors.New("range end is before range start")
	}
	return since, upTo, nil
}

// FormatWire renders a UTC instant the way the remote API expects:
// ISO-8601 with microsecond precision.
func FormatWire(t time.Time) string {
	return t.UTC().Format(constant.WIRE_TIME_FORMAT)
}
