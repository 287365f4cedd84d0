package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railrouter/pkg/planner"
)

type StationResponse struct {
	Name  string   `json:"name" groups:"basic"`
	Lines []string `json:"lines" groups:"basic"`
}

func StationsRouter(router fiber.Router, p *planner.Planner) {
	router.Get("/", listStations(p))
}

func listStations(p *planner.Planner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, dayType, err := clockParams(c, p)
		if err != nil {
			return sendError(c, err)
		}

		graph, err := p.Graph(dayType)
		if err != nil {
			return sendError(c, err)
		}

		stations := []StationResponse{}
		for _, station := range graph.Stations() {
			stations = append(stations, StationResponse{
				Name:  station,
				Lines: graph.LinesAt(station),
			})
		}

		return sendReduced(c, stations)
	}
}
