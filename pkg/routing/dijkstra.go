package routing

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railrouter/pkg/timetable"
	"github.com/travigo/railrouter/pkg/util"
)

// Infinity marks a node that has not been reached
const Infinity = math.MaxInt

var (
	ErrUnreachable    = errors.New("destination unreachable")
	ErrUnknownStation = errors.New("unknown station")
)

type EdgeKind int

const (
	// EdgeContinue stays on the same train to the next station of the line
	EdgeContinue EdgeKind = iota
	// EdgeTransfer changes line-direction at the same station
	EdgeTransfer
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeContinue:
		return "continue"
	case EdgeTransfer:
		return "transfer"
	default:
		return "unknown"
	}
}

type edge struct {
	to   int
	kind EdgeKind
	cost int
}

// PathState is the per-query working copy of a schedule node
type PathState struct {
	*timetable.ScheduleNode

	EarliestArrival int
	// Path runs from this node back to the origin
	Path []timetable.StopTime

	viaTransfer bool
	settled     bool
}

func (p *PathState) Reachable() bool {
	return p.EarliestArrival != Infinity
}

// Route runs a time-dependent Dijkstra from every origin station node and returns the reached
// nodes in the order they were settled. The nodes are only read, so a single node list can serve
// concurrent queries.
func Route(origin string, originTime int, transferPenalty int, nodes []*timetable.ScheduleNode) []*PathState {
	states := make([]*PathState, len(nodes))
	frontier := make([]int, len(nodes))

	for i, node := range nodes {
		state := &PathState{ScheduleNode: node, EarliestArrival: Infinity}

		if node.Station == origin {
			if departure, ok := node.FirstDepartureFrom(originTime); ok {
				state.EarliestArrival = departure
				state.Path = []timetable.StopTime{{Station: node.Station, Time: departure}}
			}
		}

		states[i] = state
		frontier[i] = i
	}

	edges := buildEdges(nodes, transferPenalty)

	var settled []*PathState
	for len(frontier) > 0 {
		best := 0
		for k := 1; k < len(frontier); k++ {
			if states[frontier[k]].EarliestArrival < states[frontier[best]].EarliestArrival {
				best = k
			}
		}

		index := frontier[best]
		p := states[index]
		if !p.Reachable() {
			break
		}

		frontier = util.RemoveAt(frontier, best)
		p.settled = true
		settled = append(settled, p)

		for _, e := range edges[index] {
			q := states[e.to]
			if q.settled {
				continue
			}
			relax(p, q, e)
		}
	}

	log.Debug().
		Str("origin", origin).
		Int("time", originTime).
		Int("nodes", len(nodes)).
		Int("settled", len(settled)).
		Msg("Route calculated")

	return settled
}

// buildEdges links every node to the nodes it can reach without riding further:
// the next station of its own line and the other lines at the same station
func buildEdges(nodes []*timetable.ScheduleNode, transferPenalty int) [][]edge {
	byStation := map[string][]int{}
	for i, node := range nodes {
		byStation[node.Station] = append(byStation[node.Station], i)
	}

	edges := make([][]edge, len(nodes))
	for i, node := range nodes {
		for _, j := range byStation[node.Station] {
			if j == i {
				continue
			}
			if nodes[j].Line == node.Line {
				edges[i] = append(edges[i], edge{to: j, kind: EdgeContinue})
			} else {
				edges[i] = append(edges[i], edge{to: j, kind: EdgeTransfer, cost: transferPenalty})
			}
		}

		if !node.HasNext() || node.Next == node.Station {
			continue
		}
		for _, j := range byStation[node.Next] {
			if nodes[j].Line == node.Line {
				edges[i] = append(edges[i], edge{to: j, kind: EdgeContinue})
			}
		}
	}

	return edges
}

func relax(p *PathState, q *PathState, e edge) {
	ready := p.EarliestArrival + e.cost

	var candidate int
	if !q.IsTerminus() {
		departure, ok := q.FirstDepartureAfter(ready)
		if !ok {
			return
		}
		candidate = departure
	} else {
		// Nothing departs from a terminus, so arriving there is estimated from the run time
		if e.kind != EdgeContinue || !p.HasRunTime {
			return
		}
		candidate = ready + p.TypicalRunTime
	}

	improves := candidate < q.EarliestArrival
	prefersContinue := candidate == q.EarliestArrival && e.kind == EdgeContinue && q.viaTransfer
	if !improves && !prefersContinue {
		return
	}

	q.EarliestArrival = candidate
	q.viaTransfer = e.kind == EdgeTransfer

	path := make([]timetable.StopTime, 0, len(p.Path)+1)
	path = append(path, timetable.StopTime{Station: q.Station, Time: candidate})
	q.Path = append(path, p.Path...)
}

// RouteTo returns the earliest settled node at the destination station
func RouteTo(origin string, originTime int, destination string, transferPenalty int, nodes []*timetable.ScheduleNode) (*PathState, error) {
	if !containsStation(nodes, origin) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStation, origin)
	}
	if !containsStation(nodes, destination) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStation, destination)
	}

	settled := Route(origin, originTime, transferPenalty, nodes)

	return findDestination(destination, settled)
}

func findDestination(destination string, settled []*PathState) (*PathState, error) {
	var winner *PathState
	for _, state := range settled {
		if state.Station != destination || !state.Reachable() {
			continue
		}
		if winner == nil || state.EarliestArrival < winner.EarliestArrival {
			winner = state
		}
	}

	if winner == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnreachable, destination)
	}

	return winner, nil
}

func containsStation(nodes []*timetable.ScheduleNode, station string) bool {
	for _, node := range nodes {
		if node.Station == station {
			return true
		}
	}

	return false
}
