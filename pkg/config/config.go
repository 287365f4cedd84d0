package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/travigo/railrouter/pkg/redis_client"
	"github.com/travigo/railrouter/pkg/util"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Timetable TimetableConfig `yaml:"timetable"`
	Holidays  HolidaysConfig  `yaml:"holidays"`
	Routing   RoutingConfig   `yaml:"routing"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
}

type TimetableConfig struct {
	// Path to a .json, .yaml or .csv timetable
	Path string `yaml:"path" validate:"required"`
}

// HolidaysConfig points at a JSON list of public holidays. Path wins over URL when both are set.
type HolidaysConfig struct {
	Path string `yaml:"path"`
	URL  string `yaml:"url" validate:"omitempty,url"`
}

// RoutingConfig durations are ISO8601 strings, e.g. PT3M20S
type RoutingConfig struct {
	TransferPenalty     string `yaml:"transferPenalty" validate:"required"`
	ServiceGapTolerance string `yaml:"serviceGapTolerance" validate:"required"`
	QueryTimeout        string `yaml:"queryTimeout" validate:"required"`
}

type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Address    string `yaml:"address" validate:"required_if=Enabled true"`
	Password   string `yaml:"password"`
	Database   int    `yaml:"database" validate:"gte=0,lte=15"`
	Expiration string `yaml:"expiration" validate:"required"`
}

type ServerConfig struct {
	Listen string `yaml:"listen" validate:"required"`
}

func Default() *Config {
	return &Config{
		Timetable: TimetableConfig{
			Path: "timetable.json",
		},
		Routing: RoutingConfig{
			TransferPenalty:     "PT3M20S",
			ServiceGapTolerance: "PT2M",
			QueryTimeout:        "PT1S",
		},
		Cache: CacheConfig{
			Enabled:    false,
			Address:    "localhost:6379",
			Expiration: "PT6H",
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
	}
}

// Load reads the YAML file over the defaults, applies environment overrides and validates the result.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnvironment(util.GetEnvironmentVariables()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) ApplyEnvironment(env map[string]string) error {
	c.Timetable.Path = util.EnvironmentOverride(env, "RAILROUTER_TIMETABLE", c.Timetable.Path)
	c.Holidays.URL = util.EnvironmentOverride(env, "RAILROUTER_HOLIDAYS_URL", c.Holidays.URL)

	c.Cache.Address = util.EnvironmentOverride(env, "RAILROUTER_REDIS_ADDRESS", c.Cache.Address)
	c.Cache.Password = util.EnvironmentOverride(env, "RAILROUTER_REDIS_PASSWORD", c.Cache.Password)

	if env["RAILROUTER_REDIS_DATABASE"] != "" {
		database, err := strconv.Atoi(env["RAILROUTER_REDIS_DATABASE"])
		if err != nil {
			return fmt.Errorf("RAILROUTER_REDIS_DATABASE: %w", err)
		}
		c.Cache.Database = database
	}

	if env["RAILROUTER_CACHE"] == "YES" {
		c.Cache.Enabled = true
	}

	c.Server.Listen = util.EnvironmentOverride(env, "RAILROUTER_LISTEN", c.Server.Listen)

	return nil
}

func (c *Config) Validate() error {
	v := validator.New()

	for _, section := range []any{c.Timetable, c.Holidays, c.Routing, c.Cache, c.Server} {
		if err := v.Struct(section); err != nil {
			return err
		}
	}

	for _, value := range []string{c.Routing.TransferPenalty, c.Routing.ServiceGapTolerance, c.Routing.QueryTimeout, c.Cache.Expiration} {
		if _, err := util.ISO8601ToDuration(value); err != nil {
			return err
		}
	}

	return nil
}

func (r RoutingConfig) TransferPenaltySeconds() int {
	seconds, _ := util.ISO8601ToSeconds(r.TransferPenalty)
	return seconds
}

func (r RoutingConfig) ServiceGapToleranceSeconds() int {
	seconds, _ := util.ISO8601ToSeconds(r.ServiceGapTolerance)
	return seconds
}

func (r RoutingConfig) QueryTimeoutDuration() time.Duration {
	duration, _ := util.ISO8601ToDuration(r.QueryTimeout)
	return duration
}

func (c CacheConfig) ExpirationDuration() time.Duration {
	duration, _ := util.ISO8601ToDuration(c.Expiration)
	return duration
}

func (c CacheConfig) RedisOptions() redis_client.Options {
	return redis_client.Options{
		Address:  c.Address,
		Password: c.Password,
		Database: c.Database,
	}
}
