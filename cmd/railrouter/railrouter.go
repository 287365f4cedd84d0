package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railrouter/pkg/api"
	"github.com/travigo/railrouter/pkg/planner"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

const defaultTimezone = "Asia/Tokyo"

func main() {
	if os.Getenv("RAILROUTER_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RAILROUTER_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	// Timetables are published in local time, so the process clock has to match the operator's
	timezone := os.Getenv("RAILROUTER_TIMEZONE")
	if timezone == "" {
		timezone = defaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", timezone).Msg("Failed to load timezone")
	}
	time.Local = loc

	app := &cli.App{
		Name:        "railrouter",
		Description: "Earliest-arrival routing over published rail timetables",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			planner.RegisterCLI(),
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
