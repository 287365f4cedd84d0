package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railrouter/pkg/planner"
	"github.com/travigo/railrouter/pkg/timetable"
	"github.com/travigo/railrouter/pkg/util"
)

type DownstreamStop struct {
	Station string `json:"station" groups:"basic"`
	Time    int    `json:"time" groups:"basic"`
	Clock   string `json:"clock" groups:"basic"`
}

type DownstreamResponse struct {
	DayType timetable.DayType `json:"daytype" groups:"basic"`
	Line    string            `json:"line" groups:"basic"`
	Next    string            `json:"next,omitempty" groups:"basic"`
	Stops   []DownstreamStop  `json:"stops" groups:"basic"`
}

func LinesRouter(router fiber.Router, p *planner.Planner) {
	router.Get("/:line/downstream/:station", getDownstreamTimes(p))
}

func getDownstreamTimes(p *planner.Planner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime, dayType, err := clockParams(c, p)
		if err != nil {
			return sendError(c, err)
		}

		line := c.Params("line")
		times, err := p.Downstream(dayType, line, c.Params("station"), startTime)
		if err != nil {
			return sendError(c, err)
		}

		response := DownstreamResponse{
			DayType: dayType,
			Line:    line,
			Stops:   []DownstreamStop{},
		}
		if graph, err := p.Graph(dayType); err == nil {
			response.Next, _ = graph.NextStation(c.Params("station"), line)
		}
		for _, stop := range times {
			response.Stops = append(response.Stops, DownstreamStop{
				Station: stop.Station,
				Time:    stop.Time,
				Clock:   util.SecondsToTimeString(stop.Time),
			})
		}

		return sendReduced(c, response)
	}
}
