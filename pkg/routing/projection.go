package routing

import (
	"github.com/travigo/railrouter/pkg/timetable"
)

// Result is a computed route in a form callers can render
type Result struct {
	Origin      string `json:"origin" groups:"basic"`
	Destination string `json:"destination" groups:"basic"`
	Line        string `json:"line" groups:"detailed"`

	DepartureTime int `json:"departure_time" groups:"basic"`
	ArrivalTime   int `json:"arrival_time" groups:"basic"`

	// Route lists the visited stations in travel order
	Route []timetable.StopTime `json:"route" groups:"basic"`

	// Arrivals holds every time a station appears on the route, closest to the destination first.
	// Transfer stations appear twice.
	Arrivals map[string][]int `json:"arrivals" groups:"detailed"`
}

// Nearest returns the label nearest the end of the route for a station
func (r *Result) Nearest(station string) (int, bool) {
	times := r.Arrivals[station]
	if len(times) == 0 {
		return 0, false
	}

	return times[0], true
}

// StationTimes collapses Arrivals to one time per station
func (r *Result) StationTimes() map[string]int {
	stationTimes := make(map[string]int, len(r.Arrivals))
	for station, times := range r.Arrivals {
		stationTimes[station] = times[0]
	}

	return stationTimes
}

// Project turns the destination's winning path into a Result
func Project(destination string, settled []*PathState) (*Result, error) {
	winner, err := findDestination(destination, settled)
	if err != nil {
		return nil, err
	}

	return project(winner), nil
}

func project(state *PathState) *Result {
	result := &Result{
		Destination: state.Station,
		Line:        state.Line,
		ArrivalTime: state.EarliestArrival,
		Route:       make([]timetable.StopTime, 0, len(state.Path)),
		Arrivals:    map[string][]int{},
	}

	for _, entry := range state.Path {
		result.Arrivals[entry.Station] = append(result.Arrivals[entry.Station], entry.Time)
	}
	for i := len(state.Path) - 1; i >= 0; i-- {
		result.Route = append(result.Route, state.Path[i])
	}

	if len(result.Route) > 0 {
		result.Origin = result.Route[0].Station
		result.DepartureTime = result.Route[0].Time
	}

	return result
}

// Result projects a settled state directly
func (p *PathState) Result() *Result {
	return project(p)
}
