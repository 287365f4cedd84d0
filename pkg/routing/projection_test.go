package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railrouter/pkg/timetable"
)

func TestProjectTransferStationAppearsTwice(t *testing.T) {
	result, err := Project("Yabacho", Route("Fushimi", 0, 120, transferNodes()))
	require.NoError(t, err)

	assert.Equal(t, "Fushimi", result.Origin)
	assert.Equal(t, "Yabacho", result.Destination)
	assert.Equal(t, "Meijo (clockwise)", result.Line)
	assert.Equal(t, 0, result.DepartureTime)
	assert.Equal(t, 400, result.ArrivalTime)

	assert.Equal(t, []timetable.StopTime{
		{Station: "Fushimi", Time: 0},
		{Station: "Sakae", Time: 120},
		{Station: "Sakae", Time: 300},
		{Station: "Yabacho", Time: 400},
	}, result.Route)

	assert.Equal(t, []int{300, 120}, result.Arrivals["Sakae"])
	assert.Equal(t, []int{400}, result.Arrivals["Yabacho"])
}

func TestResultNearest(t *testing.T) {
	result, err := Project("Yabacho", Route("Fushimi", 0, 120, transferNodes()))
	require.NoError(t, err)

	sakae, ok := result.Nearest("Sakae")
	assert.True(t, ok)
	assert.Equal(t, 300, sakae)

	_, ok = result.Nearest("Imaike")
	assert.False(t, ok)
}

func TestResultStationTimes(t *testing.T) {
	result, err := Project("Yabacho", Route("Fushimi", 0, 120, transferNodes()))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"Fushimi": 0,
		"Sakae":   300,
		"Yabacho": 400,
	}, result.StationTimes())
}

func TestProjectUnreachedDestination(t *testing.T) {
	_, err := Project("Nagoya", Route("Fushimi", 0, 120, transferNodes()))
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func TestProjectPicksEarliestLineAtDestination(t *testing.T) {
	settled := Route("Fushimi", 0, 0, transferNodes())

	result, err := Project("Sakae", settled)
	require.NoError(t, err)

	assert.Equal(t, "Higashiyama (east)", result.Line)
	assert.Equal(t, 120, result.ArrivalTime)
}
