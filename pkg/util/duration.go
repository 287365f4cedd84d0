package util

import (
	"errors"
	"fmt"
	"time"

	iso8601 "github.com/senseyeio/duration"
)

var ErrInvalidDuration = errors.New("invalid ISO8601 duration")

var durationReference = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ISO8601ToDuration parses durations such as PT3M20S. Calendar units are measured from a fixed UTC date.
func ISO8601ToDuration(value string) (time.Duration, error) {
	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidDuration, value, err)
	}

	return parsed.Shift(durationReference).Sub(durationReference), nil
}

func ISO8601ToSeconds(value string) (int, error) {
	duration, err := ISO8601ToDuration(value)
	if err != nil {
		return 0, err
	}

	return int(duration / time.Second), nil
}
