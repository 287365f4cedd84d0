package timetable

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railrouter/pkg/util"
	"golang.org/x/exp/slices"
)

// ScheduleNode is a (station, line-direction) vertex of the routing graph
type ScheduleNode struct {
	Station string `json:"station" groups:"basic"`
	Line    string `json:"line" groups:"basic"`
	Next    string `json:"next,omitempty" groups:"basic"`

	DepartureTimes []int `json:"departure_times" groups:"detailed"`

	TypicalRunTime int  `json:"typical_run_time" groups:"detailed"`
	HasRunTime     bool `json:"has_run_time" groups:"detailed"`
}

type nodeKey struct {
	station string
	line    string
}

func (n *ScheduleNode) key() nodeKey {
	return nodeKey{station: n.Station, line: n.Line}
}

func (n *ScheduleNode) HasNext() bool {
	return n.Next != ""
}

// IsTerminus is true when no train leaves this node
func (n *ScheduleNode) IsTerminus() bool {
	return len(n.DepartureTimes) == 0
}

// FirstDepartureAfter returns the earliest departure strictly later than t
func (n *ScheduleNode) FirstDepartureAfter(t int) (int, bool) {
	index, found := slices.BinarySearch(n.DepartureTimes, t)
	if found {
		index++
	}
	if index >= len(n.DepartureTimes) {
		return 0, false
	}

	return n.DepartureTimes[index], true
}

// FirstDepartureFrom returns the earliest departure at or after t
func (n *ScheduleNode) FirstDepartureFrom(t int) (int, bool) {
	index, _ := slices.BinarySearch(n.DepartureTimes, t)
	if index >= len(n.DepartureTimes) {
		return 0, false
	}

	return n.DepartureTimes[index], true
}

// LastDepartureUntil returns the latest departure at or before t
func (n *ScheduleNode) LastDepartureUntil(t int) (int, bool) {
	index, found := slices.BinarySearch(n.DepartureTimes, t)
	if found {
		return n.DepartureTimes[index], true
	}
	if index == 0 {
		return 0, false
	}

	return n.DepartureTimes[index-1], true
}

// Normalize flattens the lines of a timetable running on the given day type into schedule nodes.
// Broken next-station linkage is tolerated and only leaves the typical run time unknown,
// unparseable departure times fail the whole build.
func Normalize(raw Timetable, dayType DayType) ([]*ScheduleNode, error) {
	lines := make([]Line, len(raw))
	copy(lines, raw)
	util.InPlaceFilter(&lines, func(line Line) bool {
		lineDayType, err := ParseDayType(line.Type)
		if err != nil {
			log.Warn().Str("line", line.LineName).Str("type", line.Type).Msg("Ignoring line with unknown day type")
			return false
		}

		return lineDayType == dayType
	})

	var nodes []*ScheduleNode
	for _, line := range lines {
		for i, station := range line.Stations {
			next := ""
			if i < len(line.Stations)-1 {
				next = line.Stations[i+1].Name
			} else if line.Loop && len(line.Stations) > 1 {
				next = line.Stations[0].Name
			}

			departures, err := parseDepartures(station.Time)
			if err != nil {
				return nil, fmt.Errorf("line %s station %s: %w", line.LineName, station.Name, err)
			}

			nodes = append(nodes, &ScheduleNode{
				Station:        station.Name,
				Line:           line.LineName,
				Next:           next,
				DepartureTimes: departures,
			})
		}
	}

	index := map[nodeKey]*ScheduleNode{}
	var lineNames []string
	for _, node := range nodes {
		if _, exists := index[node.key()]; exists {
			log.Warn().Str("station", node.Station).Str("line", node.Line).Msg("Duplicate station on line, keeping first entry")
			continue
		}
		index[node.key()] = node
		lineNames = append(lineNames, node.Line)
	}
	lineNames = util.RemoveDuplicateStrings(lineNames, nil)

	for _, node := range nodes {
		node.TypicalRunTime, node.HasRunTime = typicalRunTime(node, index, lineNames)
	}

	log.Debug().Str("daytype", string(dayType)).Int("nodes", len(nodes)).Int("lines", len(lineNames)).Msg("Normalized timetable")

	return nodes, nil
}

func parseDepartures(times []string) ([]int, error) {
	departures := make([]int, 0, len(times))
	for _, timeString := range times {
		seconds, err := util.ToSeconds(timeString)
		if err != nil {
			return nil, err
		}
		departures = append(departures, seconds)
	}

	if !slices.IsSorted(departures) {
		slices.Sort(departures)
	}

	return slices.Compact(departures), nil
}

func typicalRunTime(node *ScheduleNode, index map[nodeKey]*ScheduleNode, lineNames []string) (int, bool) {
	if !node.HasNext() {
		return 0, false
	}

	nextNode, ok := index[nodeKey{station: node.Next, line: node.Line}]
	if !ok {
		log.Warn().Str("station", node.Station).Str("line", node.Line).Str("next", node.Next).Msg("Next station missing from line timetable")
		return 0, false
	}

	current := node.DepartureTimes
	following := nextNode.DepartureTimes

	// The stop before a terminus has departures but the terminus itself has none,
	// so measure the same stretch of track on the opposite direction instead
	if len(current) > 0 && len(following) == 0 {
		if reverse, ok := reverseLine(node.Line, lineNames); ok {
			reverseFrom, fromOk := index[nodeKey{station: node.Next, line: reverse}]
			reverseTo, toOk := index[nodeKey{station: node.Station, line: reverse}]
			if fromOk && toOk {
				current = reverseFrom.DepartureTimes
				following = reverseTo.DepartureTimes
			}
		}
	}

	return median(departureGaps(current, following))
}

// departureGaps pairs every departure with the first later departure of the following list
func departureGaps(current []int, following []int) []int {
	var gaps []int
	for _, departure := range current {
		index, found := slices.BinarySearch(following, departure)
		if found {
			index++
		}
		if index < len(following) {
			gaps = append(gaps, following[index]-departure)
		}
	}

	return gaps
}

// median returns the lower median for even counts
func median(values []int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return sorted[middle-1], true
	}

	return sorted[middle], true
}

func reverseLine(lineName string, lineNames []string) (string, bool) {
	base := util.StripBracketSuffix(lineName)
	for _, candidate := range lineNames {
		if candidate != lineName && util.StripBracketSuffix(candidate) == base {
			return candidate, true
		}
	}

	return "", false
}
