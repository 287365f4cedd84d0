package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/railrouter/pkg/planner"
	"github.com/travigo/railrouter/pkg/routing"
	"github.com/travigo/railrouter/pkg/timetable"
	"github.com/travigo/railrouter/pkg/util"
)

// clockParams reads the time and daytype query parameters, falling back to now
func clockParams(c *fiber.Ctx, p *planner.Planner) (int, timetable.DayType, error) {
	startTime, dayType := p.Now()

	if timeString := c.Query("time"); timeString != "" {
		parsed, err := util.ClockToSeconds(timeString)
		if err != nil {
			return 0, "", err
		}
		startTime = parsed
	}

	if dayTypeString := c.Query("daytype"); dayTypeString != "" {
		parsed, err := timetable.ParseDayType(dayTypeString)
		if err != nil {
			return 0, "", err
		}
		dayType = parsed
	}

	return startTime, dayType, nil
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, util.ErrInvalidTime), errors.Is(err, util.ErrInvalidDuration), errors.Is(err, timetable.ErrUnknownDayType):
		return fiber.StatusBadRequest
	case errors.Is(err, routing.ErrUnknownStation), errors.Is(err, planner.ErrNoGraph):
		return fiber.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	c.Status(statusForError(err))
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

// sendReduced marshals v with the basic group, adding detailed when ?detail=true
func sendReduced(c *fiber.Ctx, v interface{}) error {
	groups := []string{"basic"}
	if c.QueryBool("detail") {
		groups = append(groups, "detailed")
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, v)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce response",
		})
	}

	return c.JSON(reduced)
}
