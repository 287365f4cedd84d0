package routing

import (
	"errors"
	"testing"

	"github.com/sourcegraph/conc/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/railrouter/pkg/timetable"
)

func stateFor(t *testing.T, settled []*PathState, station string, line string) *PathState {
	t.Helper()

	for _, state := range settled {
		if state.Station == station && state.Line == line {
			return state
		}
	}
	t.Fatalf("no settled state for %s on %s", station, line)

	return nil
}

func chronological(path []timetable.StopTime) []timetable.StopTime {
	reversed := make([]timetable.StopTime, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		reversed = append(reversed, path[i])
	}

	return reversed
}

func chainNodes() []*timetable.ScheduleNode {
	return []*timetable.ScheduleNode{
		{Station: "A", Line: "L", Next: "B", DepartureTimes: []int{0, 300, 600}},
		{Station: "B", Line: "L", Next: "C", DepartureTimes: []int{180, 480, 780}},
		{Station: "C", Line: "L", DepartureTimes: []int{780, 1080}},
	}
}

func TestRouteChain(t *testing.T) {
	state, err := RouteTo("A", 0, "C", 0, chainNodes())
	require.NoError(t, err)

	assert.Equal(t, 780, state.EarliestArrival)
	assert.Equal(t, []timetable.StopTime{{Station: "A", Time: 0}, {Station: "B", Time: 180}, {Station: "C", Time: 780}}, chronological(state.Path))
}

func TestRouteOriginUsesDepartureAtOrAfterStart(t *testing.T) {
	settled := Route("A", 300, 0, chainNodes())
	origin := stateFor(t, settled, "A", "L")

	assert.Equal(t, 300, origin.EarliestArrival)
	assert.Equal(t, []timetable.StopTime{{Station: "A", Time: 300}}, origin.Path)
}

func TestRouteLoopSettlesEachNodeOnce(t *testing.T) {
	nodes := []*timetable.ScheduleNode{
		{Station: "X", Line: "Loop", Next: "Y", DepartureTimes: []int{0, 600}, TypicalRunTime: 100, HasRunTime: true},
		{Station: "Y", Line: "Loop", Next: "Z", DepartureTimes: []int{100, 700}, TypicalRunTime: 100, HasRunTime: true},
		{Station: "Z", Line: "Loop", Next: "X", DepartureTimes: []int{200, 800}, TypicalRunTime: 400, HasRunTime: true},
	}

	settled := Route("Y", 0, 120, nodes)
	require.Len(t, settled, 3)

	seen := map[string]bool{}
	for _, state := range settled {
		assert.False(t, seen[state.Station], "%s settled twice", state.Station)
		seen[state.Station] = true
	}

	// Travelling round the loop from Y reaches X again after Z
	state, err := RouteTo("Y", 0, "X", 120, nodes)
	require.NoError(t, err)
	assert.Equal(t, 600, state.EarliestArrival)
	assert.Equal(t, []timetable.StopTime{{Station: "Y", Time: 100}, {Station: "Z", Time: 200}, {Station: "X", Time: 600}}, chronological(state.Path))
}

func TestRouteTerminusUsesRunTime(t *testing.T) {
	nodes, err := timetable.Normalize(timetable.Timetable{
		{
			Type:     "weekday",
			LineName: "T (out)",
			Stations: []timetable.Station{
				{Name: "C", Time: []string{"0:01:40", "0:06:40"}},
				{Name: "D", Time: []string{}},
			},
		},
		{
			Type:     "weekday",
			LineName: "T (in)",
			Stations: []timetable.Station{
				{Name: "D", Time: []string{"0:00", "0:05"}},
				{Name: "C", Time: []string{"0:01:30", "0:06:30"}},
			},
		},
	}, timetable.DayTypeWeekday)
	require.NoError(t, err)

	state, err := RouteTo("C", 0, "D", 200, nodes)
	require.NoError(t, err)

	// Departure from C at 100 plus the 90 second run time borrowed from the inbound direction
	assert.Equal(t, "T (out)", state.Line)
	assert.Equal(t, 190, state.EarliestArrival)
}

func TestRouteTerminusWithoutRunTimeIsUnreachable(t *testing.T) {
	nodes := []*timetable.ScheduleNode{
		{Station: "C", Line: "T", Next: "D", DepartureTimes: []int{100}},
		{Station: "D", Line: "T"},
	}

	_, err := RouteTo("C", 0, "D", 0, nodes)
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func transferNodes() []*timetable.ScheduleNode {
	return []*timetable.ScheduleNode{
		{Station: "Fushimi", Line: "Higashiyama (east)", Next: "Sakae", DepartureTimes: []int{0, 600}, TypicalRunTime: 120, HasRunTime: true},
		{Station: "Sakae", Line: "Higashiyama (east)", Next: "Imaike", DepartureTimes: []int{120, 720}, TypicalRunTime: 120, HasRunTime: true},
		{Station: "Imaike", Line: "Higashiyama (east)", DepartureTimes: []int{240, 840}},
		{Station: "Sakae", Line: "Meijo (clockwise)", Next: "Yabacho", DepartureTimes: []int{200, 300, 500}, TypicalRunTime: 100, HasRunTime: true},
		{Station: "Yabacho", Line: "Meijo (clockwise)", DepartureTimes: []int{400, 600, 800}},
	}
}

func TestRouteTransferPenalty(t *testing.T) {
	tests := []struct {
		penalty      int
		transferTime int
		arrivalTime  int
	}{
		{penalty: 0, transferTime: 200, arrivalTime: 400},
		{penalty: 120, transferTime: 300, arrivalTime: 400},
		{penalty: 180, transferTime: 500, arrivalTime: 600},
	}

	for _, test := range tests {
		settled := Route("Fushimi", 0, test.penalty, transferNodes())

		sakae := stateFor(t, settled, "Sakae", "Meijo (clockwise)")
		assert.Equal(t, test.transferTime, sakae.EarliestArrival, "penalty %d", test.penalty)

		result, err := Project("Yabacho", settled)
		require.NoError(t, err)
		assert.Equal(t, test.arrivalTime, result.ArrivalTime, "penalty %d", test.penalty)
	}
}

func TestRoutePrefersContinueOnEqualTime(t *testing.T) {
	nodes := []*timetable.ScheduleNode{
		{Station: "S", Line: "K", Next: "M", DepartureTimes: []int{0}},
		{Station: "M", Line: "K", DepartureTimes: []int{50}},
		{Station: "S", Line: "L", Next: "M", DepartureTimes: []int{60}},
		{Station: "M", Line: "L", DepartureTimes: []int{100, 500}},
	}

	settled := Route("S", 0, 0, nodes)
	target := stateFor(t, settled, "M", "L")

	assert.Equal(t, 100, target.EarliestArrival)
	assert.Equal(t, []timetable.StopTime{{Station: "S", Time: 60}, {Station: "M", Time: 100}}, chronological(target.Path))
}

func TestRouteSettlesInNonDecreasingOrder(t *testing.T) {
	settled := Route("Fushimi", 0, 120, transferNodes())
	require.NotEmpty(t, settled)

	for i := 1; i < len(settled); i++ {
		assert.LessOrEqual(t, settled[i-1].EarliestArrival, settled[i].EarliestArrival)
	}
}

func TestRouteIsIdempotent(t *testing.T) {
	nodes := transferNodes()

	first, err := Project("Yabacho", Route("Fushimi", 0, 120, nodes))
	require.NoError(t, err)
	second, err := Project("Yabacho", Route("Fushimi", 0, 120, nodes))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRouteConcurrentQueriesShareNodes(t *testing.T) {
	nodes := transferNodes()
	penalties := []int{0, 120, 180, 0, 120, 180, 0, 120, 180}

	p := pool.NewWithResults[*Result]().WithErrors()
	for _, penalty := range penalties {
		penalty := penalty // per-iteration copy; module targets go 1.21
		p.Go(func() (*Result, error) {
			return Project("Yabacho", Route("Fushimi", 0, penalty, nodes))
		})
	}
	results, err := p.Wait()
	require.NoError(t, err)
	require.Len(t, results, len(penalties))

	arrivals := map[int]int{}
	for _, result := range results {
		arrivals[result.ArrivalTime]++
	}
	assert.Equal(t, map[int]int{400: 6, 600: 3}, arrivals)

	for _, penalty := range penalties[:3] {
		expected, err := Project("Yabacho", Route("Fushimi", 0, penalty, nodes))
		require.NoError(t, err)
		assert.Contains(t, results, expected)
	}
}

func TestRouteAfterLastTrain(t *testing.T) {
	_, err := RouteTo("A", 700, "C", 0, chainNodes())
	assert.True(t, errors.Is(err, ErrUnreachable))
}

func TestRouteUnknownStation(t *testing.T) {
	_, err := RouteTo("Nowhere", 0, "C", 0, chainNodes())
	assert.True(t, errors.Is(err, ErrUnknownStation))

	_, err = RouteTo("A", 0, "Nowhere", 0, chainNodes())
	assert.True(t, errors.Is(err, ErrUnknownStation))
}

func TestRouteDoesNotReturnUnreachedNodes(t *testing.T) {
	settled := Route("B", 0, 0, chainNodes())
	for _, state := range settled {
		assert.True(t, state.Reachable())
		assert.NotEqual(t, "A", state.Station)
	}
}

func TestEdgeKindString(t *testing.T) {
	assert.Equal(t, "continue", EdgeContinue.String())
	assert.Equal(t, "transfer", EdgeTransfer.String())
}
