package redis_client

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

type Options struct {
	Address  string
	Password string
	Database int
}

func DefaultOptions() Options {
	return Options{
		Address:  defaultConnectionAddress,
		Password: defaultConnectionPassword,
		Database: defaultDatabase,
	}
}

// Connect opens a client and checks the server answers a ping
func Connect(ctx context.Context, options Options) (*redis.Client, error) {
	if options.Address == "" {
		options.Address = defaultConnectionAddress
	}

	var client *redis.Client
	if options.Password == "" {
		client = redis.NewClient(&redis.Options{
			Addr: options.Address,
			DB:   options.Database,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     options.Address,
			Password: options.Password,
			DB:       options.Database,
		})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Info().Str("address", options.Address).Int("database", options.Database).Msg("Connected to Redis")

	return client, nil
}
