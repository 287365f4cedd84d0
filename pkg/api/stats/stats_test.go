package stats

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	app := fiber.New()
	app.Use(NewMetrics())
	app.Get("/core/stations/:name", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	before := testutil.CollectAndCount(requestDuration)

	resp, err := app.Test(httptest.NewRequest("GET", "/core/stations/Sakae", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	assert.Equal(t, before+1, testutil.CollectAndCount(requestDuration))
}

func TestRecordPlan(t *testing.T) {
	before := testutil.ToFloat64(planCount.WithLabelValues(PlanOutcomeUnreachable))

	RecordPlan(PlanOutcomeUnreachable)

	assert.Equal(t, before+1, testutil.ToFloat64(planCount.WithLabelValues(PlanOutcomeUnreachable)))
}
