package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/travigo/railrouter/pkg/api/routes"
	"github.com/travigo/railrouter/pkg/api/stats"
	"github.com/travigo/railrouter/pkg/planner"
)

func NewApp(p *planner.Planner) *fiber.App {
	webApp := fiber.New(fiber.Config{
		// Station and line names arrive percent-encoded
		UnescapePath: true,
	})
	webApp.Use(NewLogger())
	webApp.Use(stats.NewMetrics())

	webApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), p)
	routes.PlannerRouter(group.Group("/planner"), p)
	routes.TrainsRouter(group.Group("/trains"), p)
	routes.LinesRouter(group.Group("/lines"), p)

	return webApp
}

func SetupServer(listen string, p *planner.Planner) error {
	return NewApp(p).Listen(listen)
}
