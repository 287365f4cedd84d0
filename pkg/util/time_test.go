package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSeconds(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"0:00", 0},
		{"00:00", 0},
		{"5:32", 19920},
		{"05:32", 19920},
		{"24:05", 86700},
		{"25:10", 90600},
		{"10:35", 38100},
		{"1:02:03", 3723},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			actual, err := ToSeconds(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestToSecondsInvalid(t *testing.T) {
	for _, input := range []string{"", "10", "10:5", "10:60", "ab:cd", "1:2:3:4", "-1:00", "123:00", "10:00:99"} {
		t.Run(input, func(t *testing.T) {
			_, err := ToSeconds(input)
			assert.True(t, errors.Is(err, ErrInvalidTime), "expected ErrInvalidTime for %q", input)
		})
	}
}

func TestClockToSeconds(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"0:30", 88200},
		{"4:59", 104340},
		{"5:00", 18000},
		{"6:00", 21600},
		{"24:30", 88200},
		{"25:10", 90600},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			actual, err := ClockToSeconds(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}

	_, err := ClockToSeconds("six")
	assert.True(t, errors.Is(err, ErrInvalidTime))
}

func TestNowToSeconds(t *testing.T) {
	assert.Equal(t, 19920, NowToSeconds(time.Date(2022, 9, 1, 5, 32, 0, 0, time.UTC)))
	assert.Equal(t, 86700, NowToSeconds(time.Date(2022, 9, 1, 0, 5, 0, 0, time.UTC)))
	assert.Equal(t, 4*3600+59*60+59+86400, NowToSeconds(time.Date(2022, 9, 1, 4, 59, 59, 0, time.UTC)))
	assert.Equal(t, 23*3600+30, NowToSeconds(time.Date(2022, 9, 1, 23, 0, 30, 0, time.UTC)))
}

func TestSecondsToTimeString(t *testing.T) {
	assert.Equal(t, "0:00", SecondsToTimeString(0))
	assert.Equal(t, "10:35", SecondsToTimeString(38100))
	assert.Equal(t, "24:05", SecondsToTimeString(86700))
	assert.Equal(t, "1:02:03", SecondsToTimeString(3723))
}

func TestTimeStringRoundTrip(t *testing.T) {
	for s := 0; s < 100000; s++ {
		actual, err := ToSeconds(SecondsToTimeString(s))
		if err != nil || actual != s {
			t.Fatalf("round trip failed for %d: got %d (%v)", s, actual, err)
		}
	}
}

func TestOperationalDate(t *testing.T) {
	late := time.Date(2022, 10, 10, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2022, 10, 9, 0, 0, 0, 0, time.UTC), OperationalDate(late))

	morning := time.Date(2022, 10, 10, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2022, 10, 10, 0, 0, 0, 0, time.UTC), OperationalDate(morning))
}
