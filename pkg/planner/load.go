package planner

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railrouter/pkg/calendar"
	"github.com/travigo/railrouter/pkg/config"
	"github.com/travigo/railrouter/pkg/redis_client"
	"github.com/travigo/railrouter/pkg/routecache"
	"github.com/travigo/railrouter/pkg/timetable"
)

// Load reads the timetable and holidays named by the config and connects the cache when enabled
func Load(ctx context.Context, cfg *config.Config) (*Planner, error) {
	raw, err := timetable.Load(cfg.Timetable.Path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.Timetable.Path).Int("lines", len(raw)).Msg("Loaded timetable")

	cal, err := loadCalendar(ctx, cfg.Holidays)
	if err != nil {
		return nil, err
	}

	options := Options{
		TransferPenalty:     cfg.Routing.TransferPenaltySeconds(),
		ServiceGapTolerance: cfg.Routing.ServiceGapToleranceSeconds(),
		Timeout:             cfg.Routing.QueryTimeoutDuration(),
	}

	if cfg.Cache.Enabled {
		client, err := redis_client.Connect(ctx, cfg.Cache.RedisOptions())
		if err != nil {
			log.Warn().Err(err).Msg("Route cache unavailable, continuing without it")
		} else {
			options.Cache = routecache.New(client, cfg.Cache.ExpirationDuration())
		}
	}

	return New(ctx, raw, cal, options)
}

func loadCalendar(ctx context.Context, holidays config.HolidaysConfig) (*calendar.Calendar, error) {
	switch {
	case holidays.Path != "":
		return calendar.LoadFile(holidays.Path)
	case holidays.URL != "":
		return calendar.Fetch(ctx, holidays.URL)
	default:
		log.Warn().Msg("No holiday list configured, only weekends use the holiday timetable")
		return calendar.New(nil), nil
	}
}
