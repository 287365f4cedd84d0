package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ServiceDayStartHour is the hour at which a new operating day begins. Trains running
// between midnight and this hour belong to the previous day and are timetabled as 24:00+.
const ServiceDayStartHour = 5

var ErrInvalidTime = errors.New("invalid time string")

// ToSeconds converts a timetable clock string ("H:MM", "HH:MM" or "H:MM:SS") into seconds since midnight.
// Hours above 23 are allowed as timetables list night trains as "25:10".
func ToSeconds(timeString string) (int, error) {
	parts := strings.Split(strings.TrimSpace(timeString), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, timeString)
	}

	hours, err := parseClockField(parts[0], 1, 2, -1)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, timeString)
	}
	minutes, err := parseClockField(parts[1], 2, 2, 59)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, timeString)
	}

	seconds := 0
	if len(parts) == 3 {
		seconds, err = parseClockField(parts[2], 2, 2, 59)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, timeString)
		}
	}

	return hours*3600 + minutes*60 + seconds, nil
}

func parseClockField(field string, minDigits int, maxDigits int, maxValue int) (int, error) {
	if len(field) < minDigits || len(field) > maxDigits {
		return 0, ErrInvalidTime
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTime
		}
	}

	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	if maxValue >= 0 && value > maxValue {
		return 0, ErrInvalidTime
	}

	return value, nil
}

// ClockToSeconds parses a clock time entered by a user as seconds since the start of the operating day.
// Times before ServiceDayStartHour refer to the night service, so "0:30" becomes 88200 (24:30).
func ClockToSeconds(timeString string) (int, error) {
	seconds, err := ToSeconds(timeString)
	if err != nil {
		return 0, err
	}
	if seconds < ServiceDayStartHour*3600 {
		seconds += 24 * 3600
	}

	return seconds, nil
}

// NowToSeconds returns the seconds since the start of the operating day for a wall clock time.
// 00:05 becomes 86700 (24:05) and 05:32 becomes 19920.
func NowToSeconds(now time.Time) int {
	hours := now.Hour()
	if hours < ServiceDayStartHour {
		hours += 24
	}

	return hours*3600 + now.Minute()*60 + now.Second()
}

// SecondsToTimeString formats seconds since midnight as "H:MM" without wrapping past 24 hours.
// A ":SS" suffix is only added when the value is not a whole minute.
func SecondsToTimeString(sec int) string {
	hours := sec / 3600
	minutes := (sec % 3600) / 60
	seconds := sec % 60

	if seconds != 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}

	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// OperationalDate returns midnight of the operating day that owns the given wall clock time
func OperationalDate(now time.Time) time.Time {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if now.Hour() < ServiceDayStartHour {
		date = date.AddDate(0, 0, -1)
	}

	return date
}
