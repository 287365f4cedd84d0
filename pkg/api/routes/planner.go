package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railrouter/pkg/api/stats"
	"github.com/travigo/railrouter/pkg/planner"
	"github.com/travigo/railrouter/pkg/routing"
	"github.com/travigo/railrouter/pkg/timetable"
	"github.com/travigo/railrouter/pkg/util"
)

type PlanResponse struct {
	Reachable bool              `json:"reachable" groups:"basic"`
	DayType   timetable.DayType `json:"daytype" groups:"basic"`

	Origin      string `json:"origin" groups:"basic"`
	Destination string `json:"destination" groups:"basic"`
	Line        string `json:"line,omitempty" groups:"detailed"`

	DepartureTime int    `json:"departure_time,omitempty" groups:"basic"`
	ArrivalTime   int    `json:"arrival_time,omitempty" groups:"basic"`
	Departure     string `json:"departure,omitempty" groups:"basic"`
	Arrival       string `json:"arrival,omitempty" groups:"basic"`

	Route    []timetable.StopTime `json:"route,omitempty" groups:"basic"`
	Arrivals map[string][]int     `json:"arrivals,omitempty" groups:"detailed"`
	// Stations keeps the time nearest the destination for every station passed
	Stations map[string]int `json:"stations,omitempty" groups:"detailed"`
}

func PlannerRouter(router fiber.Router, p *planner.Planner) {
	router.Get("/:origin/:destination", getPlanBetweenStations(p))
}

func getPlanBetweenStations(p *planner.Planner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime, dayType, err := clockParams(c, p)
		if err != nil {
			return sendError(c, err)
		}

		query := planner.Query{
			Origin:      c.Params("origin"),
			Destination: c.Params("destination"),
			Time:        startTime,
			DayType:     dayType,
		}

		if transfer := c.Query("transfer"); transfer != "" {
			penalty, err := util.ISO8601ToSeconds(transfer)
			if err != nil {
				return sendError(c, err)
			}
			query.TransferPenalty = &penalty
		}

		response := PlanResponse{
			DayType:     dayType,
			Origin:      query.Origin,
			Destination: query.Destination,
		}

		result, err := p.Plan(c.UserContext(), query)
		if errors.Is(err, routing.ErrUnreachable) {
			stats.RecordPlan(stats.PlanOutcomeUnreachable)
			return sendReduced(c, response)
		}
		if err != nil {
			stats.RecordPlan(stats.PlanOutcomeError)
			return sendError(c, err)
		}

		if err := copier.CopyWithOption(&response, result, copier.Option{DeepCopy: true}); err != nil {
			log.Error().Err(err).Msg("Failed to copy route result")
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Could not build response",
			})
		}
		response.Reachable = true
		response.Stations = result.StationTimes()
		response.Departure = util.SecondsToTimeString(result.DepartureTime)
		response.Arrival = util.SecondsToTimeString(result.ArrivalTime)

		stats.RecordPlan(stats.PlanOutcomeFound)

		return sendReduced(c, response)
	}
}
