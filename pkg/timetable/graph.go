package timetable

import (
	"github.com/travigo/railrouter/pkg/util"
)

// Graph is a read-only index over the schedule nodes of one day type.
// It is safe to share between goroutines once built.
type Graph struct {
	DayType DayType

	nodes     []*ScheduleNode
	index     map[nodeKey]*ScheduleNode
	byStation map[string][]*ScheduleNode
	stations  []string
	lines     []string
}

func BuildGraph(raw Timetable, dayType DayType) (*Graph, error) {
	nodes, err := Normalize(raw, dayType)
	if err != nil {
		return nil, err
	}

	return NewGraph(dayType, nodes), nil
}

func NewGraph(dayType DayType, nodes []*ScheduleNode) *Graph {
	graph := &Graph{
		DayType:   dayType,
		nodes:     nodes,
		index:     map[nodeKey]*ScheduleNode{},
		byStation: map[string][]*ScheduleNode{},
	}

	var stations []string
	var lines []string
	for _, node := range nodes {
		if _, exists := graph.index[node.key()]; !exists {
			graph.index[node.key()] = node
		}
		graph.byStation[node.Station] = append(graph.byStation[node.Station], node)

		stations = append(stations, node.Station)
		lines = append(lines, node.Line)
	}

	graph.stations = util.RemoveDuplicateStrings(stations, nil)
	graph.lines = util.RemoveDuplicateStrings(lines, nil)

	return graph
}

func (g *Graph) Nodes() []*ScheduleNode {
	return g.nodes
}

func (g *Graph) Node(station string, line string) (*ScheduleNode, bool) {
	node, ok := g.index[nodeKey{station: station, line: line}]
	return node, ok
}

func (g *Graph) HasStation(station string) bool {
	_, ok := g.byStation[station]
	return ok
}

// Stations returns station names in timetable order
func (g *Graph) Stations() []string {
	return g.stations
}

// Lines returns line names in timetable order
func (g *Graph) Lines() []string {
	return g.lines
}

// LinesAt returns every line-direction serving a station
func (g *Graph) LinesAt(station string) []string {
	var lines []string
	for _, node := range g.byStation[station] {
		lines = append(lines, node.Line)
	}

	return lines
}

func (g *Graph) NextStation(station string, line string) (string, bool) {
	node, ok := g.Node(station, line)
	if !ok || !node.HasNext() {
		return "", false
	}

	return node.Next, true
}

// ReverseLine finds the opposite direction of the same physical line
func (g *Graph) ReverseLine(line string) (string, bool) {
	return reverseLine(line, g.lines)
}

func (g *Graph) lineLength(line string) int {
	count := 0
	for _, node := range g.nodes {
		if node.Line == line {
			count++
		}
	}

	return count
}
