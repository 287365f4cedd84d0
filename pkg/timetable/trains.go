package timetable

// DefaultServiceGapTolerance is how far (in seconds) an observed hop may exceed the typical run time
// before it is treated as a break in service rather than a slow train
const DefaultServiceGapTolerance = 120

// ActiveTrain is a train somewhere between two consecutive stations of a line
type ActiveTrain struct {
	Line       string  `json:"line" groups:"basic"`
	From       string  `json:"from" groups:"basic"`
	To         string  `json:"to" groups:"basic"`
	DepartedAt int     `json:"departed_at" groups:"basic"`
	ArrivesAt  int     `json:"arrives_at" groups:"basic"`
	Progress   float64 `json:"progress" groups:"basic"`
}

// ActiveTrains lists the trains running at time t across the whole graph
func (g *Graph) ActiveTrains(t int, tolerance int) []ActiveTrain {
	var trains []ActiveTrain

	for _, node := range g.nodes {
		if !node.HasNext() {
			continue
		}
		nextNode, ok := g.Node(node.Next, node.Line)
		if !ok {
			continue
		}

		departedAt, arrivesAt, running := between(node, nextNode, t, tolerance)
		if !running {
			continue
		}

		progress := 1.0
		if arrivesAt > departedAt {
			progress = float64(t-departedAt) / float64(arrivesAt-departedAt)
		}
		if progress > 1 {
			progress = 1
		}

		trains = append(trains, ActiveTrain{
			Line:       node.Line,
			From:       node.Station,
			To:         node.Next,
			DepartedAt: departedAt,
			ArrivesAt:  arrivesAt,
			Progress:   progress,
		})
	}

	return trains
}

// between decides whether a train that left current is still on its way to next at time t
func between(current *ScheduleNode, next *ScheduleNode, t int, tolerance int) (int, int, bool) {
	departedAt, ok := current.LastDepartureUntil(t)
	if !ok {
		return 0, 0, false
	}

	if next.IsTerminus() {
		if !current.HasRunTime {
			return 0, 0, false
		}
		arrivesAt := departedAt + current.TypicalRunTime
		return departedAt, arrivesAt, t-departedAt <= current.TypicalRunTime
	}

	arrivesAt, ok := next.FirstDepartureAfter(departedAt)
	if !ok || t > arrivesAt {
		return 0, 0, false
	}

	if !current.HasRunTime {
		return departedAt, arrivesAt, true
	}

	hop := arrivesAt - departedAt - current.TypicalRunTime
	if hop < 0 {
		hop = -hop
	}
	if hop <= tolerance {
		return departedAt, arrivesAt, true
	}

	return departedAt, arrivesAt, t-departedAt <= current.TypicalRunTime
}

// ExtractSchedules follows a line from a station through its next-station links.
// Loop lines stop after one full circuit.
func (g *Graph) ExtractSchedules(line string, startStation string) []*ScheduleNode {
	limit := g.lineLength(line)

	var schedules []*ScheduleNode
	station := startStation
	for len(schedules) < limit {
		node, ok := g.Node(station, line)
		if !ok {
			break
		}
		schedules = append(schedules, node)

		if !node.HasNext() {
			break
		}
		station = node.Next
	}

	return schedules
}

// DownstreamTimes projects the times a passenger boarding at startStation from time t reaches
// each later station of the line. The walk ends at the terminus, after the last train, or where a
// loop line's service breaks (a departure later than run time plus tolerance); that final station
// is estimated from the typical run time.
func (g *Graph) DownstreamTimes(line string, startStation string, t int, tolerance int) []StopTime {
	schedules := g.ExtractSchedules(line, startStation)
	if len(schedules) == 0 {
		return nil
	}

	first, ok := schedules[0].FirstDepartureFrom(t)
	if !ok {
		return nil
	}
	times := []StopTime{{Station: schedules[0].Station, Time: first}}

	for i := 1; i < len(schedules); i++ {
		previous := schedules[i-1]
		previousTime := times[len(times)-1].Time

		departure, ok := schedules[i].FirstDepartureFrom(previousTime)
		if ok && (!previous.HasRunTime || departure <= previousTime+previous.TypicalRunTime+tolerance) {
			times = append(times, StopTime{Station: schedules[i].Station, Time: departure})
			continue
		}

		if previous.HasRunTime {
			times = append(times, StopTime{Station: schedules[i].Station, Time: previousTime + previous.TypicalRunTime})
		}
		break
	}

	return times
}
