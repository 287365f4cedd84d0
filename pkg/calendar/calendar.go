package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railrouter/pkg/timetable"
	"github.com/travigo/railrouter/pkg/util"
)

// HolidayDateFormat matches dates such as 2022/10/10 and 2022/1/3
const HolidayDateFormat = "2006/1/2"

type Calendar struct {
	holidays map[string]bool
}

func New(holidays []time.Time) *Calendar {
	calendar := &Calendar{holidays: map[string]bool{}}
	for _, holiday := range holidays {
		calendar.holidays[holiday.Format(HolidayDateFormat)] = true
	}

	return calendar
}

// Parse builds a calendar from holiday strings in HolidayDateFormat
func Parse(dates []string) (*Calendar, error) {
	var holidays []time.Time
	for _, date := range dates {
		holiday, err := time.Parse(HolidayDateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday %q: %w", date, err)
		}
		holidays = append(holidays, holiday)
	}

	return New(holidays), nil
}

func (c *Calendar) IsHoliday(date time.Time) bool {
	return c.holidays[date.Format(HolidayDateFormat)]
}

// DayType returns the timetable variant in service at the given wall clock time.
// Trains after midnight run to the previous day's timetable.
func (c *Calendar) DayType(now time.Time) timetable.DayType {
	date := util.OperationalDate(now)

	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday || c.IsHoliday(date) {
		return timetable.DayTypeHoliday
	}

	return timetable.DayTypeWeekday
}

func Decode(reader io.Reader) (*Calendar, error) {
	var dates []string
	if err := json.NewDecoder(reader).Decode(&dates); err != nil {
		return nil, fmt.Errorf("decoding holidays: %w", err)
	}

	return Parse(dates)
}

func LoadFile(path string) (*Calendar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file)
}

var errRetryableStatus = errors.New("retryable status")

// Fetch downloads the holiday list, retrying transient failures with exponential backoff
func Fetch(ctx context.Context, url string) (*Calendar, error) {
	var calendar *Calendar

	retryBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %d", errRetryableStatus, resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("fetching holidays: unexpected status %d", resp.StatusCode))
		}

		decoded, err := Decode(resp.Body)
		if err != nil {
			return backoff.Permanent(err)
		}
		calendar = decoded

		return nil
	}

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("url", url).Dur("wait", wait).Msg("Failed to get holidays, retrying")
	}

	if err := backoff.RetryNotify(operation, retryBackoff, notify); err != nil {
		return nil, err
	}

	log.Info().Str("url", url).Int("holidays", len(calendar.holidays)).Msg("Loaded holidays")

	return calendar, nil
}
