package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/railrouter/pkg/calendar"
	"github.com/travigo/railrouter/pkg/routecache"
	"github.com/travigo/railrouter/pkg/routing"
	"github.com/travigo/railrouter/pkg/timetable"
	"github.com/travigo/railrouter/pkg/util"
)

var ErrNoGraph = errors.New("no timetable for day type")

type Options struct {
	// TransferPenalty in seconds, used when a query does not set its own
	TransferPenalty     int
	ServiceGapTolerance int
	// Timeout bounds a single route calculation, zero disables it
	Timeout time.Duration

	// Cache is optional
	Cache *routecache.Cache
}

func DefaultOptions() Options {
	return Options{
		TransferPenalty:     200,
		ServiceGapTolerance: timetable.DefaultServiceGapTolerance,
		Timeout:             time.Second,
	}
}

// Planner answers routing questions against the graphs of every day type
type Planner struct {
	graphs   map[timetable.DayType]*timetable.Graph
	calendar *calendar.Calendar
	options  Options

	now   func() time.Time
	route routeFunc
}

type routeFunc func(origin string, originTime int, destination string, transferPenalty int, nodes []*timetable.ScheduleNode) (*routing.PathState, error)

type Query struct {
	Origin      string
	Destination string
	// Time in seconds since the start of the operating day
	Time int
	// DayType is resolved from the calendar when empty
	DayType timetable.DayType
	// TransferPenalty overrides Options.TransferPenalty when set
	TransferPenalty *int
}

// New builds the graph of every day type concurrently
func New(ctx context.Context, raw timetable.Timetable, cal *calendar.Calendar, options Options) (*Planner, error) {
	if cal == nil {
		cal = calendar.New(nil)
	}

	p := pool.NewWithResults[*timetable.Graph]().WithErrors().WithContext(ctx)
	for _, dayType := range timetable.DayTypes {
		dayType := dayType // per-iteration copy; module targets go 1.21
		p.Go(func(ctx context.Context) (*timetable.Graph, error) {
			graph, err := timetable.BuildGraph(raw, dayType)
			if err != nil {
				return nil, fmt.Errorf("building %s graph: %w", dayType, err)
			}
			return graph, nil
		})
	}

	graphs, err := p.Wait()
	if err != nil {
		return nil, err
	}

	planner := &Planner{
		graphs:   map[timetable.DayType]*timetable.Graph{},
		calendar: cal,
		options:  options,
		now:      time.Now,
		route:    routing.RouteTo,
	}
	for _, graph := range graphs {
		planner.graphs[graph.DayType] = graph

		log.Info().
			Str("daytype", string(graph.DayType)).
			Int("nodes", len(graph.Nodes())).
			Int("stations", len(graph.Stations())).
			Int("lines", len(graph.Lines())).
			Msg("Built timetable graph")
	}

	return planner, nil
}

func (p *Planner) Options() Options {
	return p.options
}

func (p *Planner) Graph(dayType timetable.DayType) (*timetable.Graph, error) {
	graph, ok := p.graphs[dayType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoGraph, dayType)
	}

	return graph, nil
}

// Now returns the current operating-day time and the day type in service
func (p *Planner) Now() (int, timetable.DayType) {
	now := p.now()
	return util.NowToSeconds(now), p.calendar.DayType(now)
}

func (p *Planner) resolveDayType(dayType timetable.DayType) timetable.DayType {
	if dayType != "" {
		return dayType
	}

	return p.calendar.DayType(p.now())
}

type planOutcome struct {
	result *routing.Result
	err    error
}

// Plan finds the earliest arrival for the query, consulting the cache first
func (p *Planner) Plan(ctx context.Context, query Query) (*routing.Result, error) {
	dayType := p.resolveDayType(query.DayType)
	graph, err := p.Graph(dayType)
	if err != nil {
		return nil, err
	}
	for _, station := range []string{query.Origin, query.Destination} {
		if !graph.HasStation(station) {
			return nil, fmt.Errorf("%w: %s on %s timetable", routing.ErrUnknownStation, station, dayType)
		}
	}

	transferPenalty := p.options.TransferPenalty
	if query.TransferPenalty != nil {
		transferPenalty = *query.TransferPenalty
	}

	key := routecache.Key{
		DayType:         dayType,
		Origin:          query.Origin,
		Time:            query.Time,
		Destination:     query.Destination,
		TransferPenalty: transferPenalty,
	}
	if cached, found := p.options.Cache.Get(ctx, key); found {
		log.Debug().Str("key", key.GetCacheKey()).Msg("Route served from cache")
		return cached, nil
	}

	routeCtx := ctx
	if p.options.Timeout > 0 {
		var cancel context.CancelFunc
		routeCtx, cancel = context.WithTimeout(ctx, p.options.Timeout)
		defer cancel()
	}

	if err := routeCtx.Err(); err != nil {
		return nil, fmt.Errorf("planning %s to %s: %w", query.Origin, query.Destination, err)
	}

	done := make(chan planOutcome, 1)
	go func() {
		state, err := p.route(query.Origin, query.Time, query.Destination, transferPenalty, graph.Nodes())
		if err != nil {
			done <- planOutcome{err: err}
			return
		}
		done <- planOutcome{result: state.Result()}
	}()

	var outcome planOutcome
	select {
	case <-routeCtx.Done():
		return nil, fmt.Errorf("planning %s to %s: %w", query.Origin, query.Destination, routeCtx.Err())
	case outcome = <-done:
	}

	if outcome.err != nil {
		return nil, outcome.err
	}

	p.options.Cache.Set(ctx, key, outcome.result)

	return outcome.result, nil
}

// Trains lists the trains running at time t
func (p *Planner) Trains(dayType timetable.DayType, t int) ([]timetable.ActiveTrain, error) {
	graph, err := p.Graph(p.resolveDayType(dayType))
	if err != nil {
		return nil, err
	}

	return graph.ActiveTrains(t, p.options.ServiceGapTolerance), nil
}

// Downstream projects arrival times along a line for a passenger boarding at station from time t
func (p *Planner) Downstream(dayType timetable.DayType, line string, station string, t int) ([]timetable.StopTime, error) {
	graph, err := p.Graph(p.resolveDayType(dayType))
	if err != nil {
		return nil, err
	}

	if _, ok := graph.Node(station, line); !ok {
		return nil, fmt.Errorf("%w: %s on %s", routing.ErrUnknownStation, station, line)
	}

	return graph.DownstreamTimes(line, station, t, p.options.ServiceGapTolerance), nil
}
