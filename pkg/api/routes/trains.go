package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/railrouter/pkg/planner"
	"github.com/travigo/railrouter/pkg/timetable"
	"github.com/travigo/railrouter/pkg/util"
)

type TrainsResponse struct {
	DayType timetable.DayType       `json:"daytype" groups:"basic"`
	Time    string                  `json:"time" groups:"basic"`
	Trains  []timetable.ActiveTrain `json:"trains" groups:"basic"`
}

func TrainsRouter(router fiber.Router, p *planner.Planner) {
	router.Get("/", listActiveTrains(p))
}

func listActiveTrains(p *planner.Planner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime, dayType, err := clockParams(c, p)
		if err != nil {
			return sendError(c, err)
		}

		trains, err := p.Trains(dayType, startTime)
		if err != nil {
			return sendError(c, err)
		}
		if trains == nil {
			trains = []timetable.ActiveTrain{}
		}

		return sendReduced(c, TrainsResponse{
			DayType: dayType,
			Time:    util.SecondsToTimeString(startTime),
			Trains:  trains,
		})
	}
}
