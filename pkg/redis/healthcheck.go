package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// HealthcheckTimeout bounds a single readiness ping.
const HealthcheckTimeout = 2 * time.Second

// Healthcheck returns a readiness check for httpserver.HealthCheckHandler.
// It pings client, giving up after HealthcheckTimeout so a stalled session
// store cannot hang the check.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, HealthcheckTimeout)
		defer cancel()

		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
