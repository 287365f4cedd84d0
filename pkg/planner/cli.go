package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railrouter/pkg/config"
	"github.com/travigo/railrouter/pkg/routing"
	"github.com/travigo/railrouter/pkg/timetable"
	"github.com/travigo/railrouter/pkg/util"
	"github.com/urfave/cli/v2"
)

var commonFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Usage:   "path to the YAML configuration",
		EnvVars: []string{"RAILROUTER_CONFIG"},
	},
	&cli.StringFlag{
		Name:  "daytype",
		Usage: "timetable variant (weekday or holiday), defaults to today's",
	},
	&cli.StringFlag{
		Name:  "time",
		Usage: "time as H:MM, hours before 5 mean the night service, defaults to now",
	},
	&cli.BoolFlag{
		Name:  "debug",
		Usage: "dump the full result",
	},
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Answers routing questions from the command line",
		Subcommands: []*cli.Command{
			{
				Name:  "route",
				Usage: "find the earliest arrival between two stations",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "origin station",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "destination station",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "transfer",
						Usage: "transfer penalty as an ISO8601 duration, e.g. PT3M20S",
					},
				}, commonFlags...),
				Action: func(c *cli.Context) error {
					planner, startTime, dayType, err := setup(c)
					if err != nil {
						return err
					}

					query := Query{
						Origin:      c.String("from"),
						Destination: c.String("to"),
						Time:        startTime,
						DayType:     dayType,
					}
					if c.String("transfer") != "" {
						penalty, err := util.ISO8601ToSeconds(c.String("transfer"))
						if err != nil {
							return err
						}
						query.TransferPenalty = &penalty
					}

					return planRoute(c.Context, os.Stdout, planner, query, c.Bool("debug"))
				},
			},
			{
				Name:  "trains",
				Usage: "list the trains running at a time",
				Flags: commonFlags,
				Action: func(c *cli.Context) error {
					planner, startTime, dayType, err := setup(c)
					if err != nil {
						return err
					}

					trains, err := planner.Trains(dayType, startTime)
					if err != nil {
						return err
					}

					if c.Bool("debug") {
						pretty.Println(trains)
						return nil
					}
					for _, train := range trains {
						fmt.Printf("%s  %s -> %s  %s-%s  %3.0f%%\n",
							train.Line, train.From, train.To,
							util.SecondsToTimeString(train.DepartedAt), util.SecondsToTimeString(train.ArrivesAt),
							train.Progress*100)
					}
					log.Info().Int("trains", len(trains)).Str("time", util.SecondsToTimeString(startTime)).Msg("Active trains")

					return nil
				},
			},
		},
	}
}

// setup loads the planner and resolves the time and day type flags
func setup(c *cli.Context) (*Planner, int, timetable.DayType, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, 0, "", err
	}

	planner, err := Load(c.Context, cfg)
	if err != nil {
		return nil, 0, "", err
	}

	startTime, dayType := planner.Now()

	if c.String("time") != "" {
		startTime, err = util.ClockToSeconds(c.String("time"))
		if err != nil {
			return nil, 0, "", err
		}
	}
	if c.String("daytype") != "" {
		dayType, err = timetable.ParseDayType(c.String("daytype"))
		if err != nil {
			return nil, 0, "", err
		}
	}

	return planner, startTime, dayType, nil
}

// planRoute writes the route for query to w. Finding no train is an answer, not a failure.
func planRoute(ctx context.Context, w io.Writer, planner *Planner, query Query, debug bool) error {
	result, err := planner.Plan(ctx, query)
	if errors.Is(err, routing.ErrUnreachable) {
		fmt.Fprintf(w, "No route from %s to %s after %s\n", query.Origin, query.Destination, util.SecondsToTimeString(query.Time))
		return nil
	}
	if err != nil {
		return err
	}

	if debug {
		pretty.Fprintf(w, "%# v\n", result)
		return nil
	}
	printRoute(w, result)

	return nil
}

func printRoute(w io.Writer, result *routing.Result) {
	for _, stop := range result.Route {
		marker := ""
		if len(result.Arrivals[stop.Station]) > 1 {
			if nearest, _ := result.Nearest(stop.Station); nearest == stop.Time {
				marker = "  (change)"
			}
		}
		fmt.Fprintf(w, "%8s  %s%s\n", util.SecondsToTimeString(stop.Time), stop.Station, marker)
	}
	fmt.Fprintf(w, "Arrive %s at %s\n", result.Destination, util.SecondsToTimeString(result.ArrivalTime))
}
