package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned by Connect when Config.ConnectionURL is unset.
	ErrEmptyConnectionURL = errors.New("redis: connection URL is empty")
	// ErrFailedToParseRedisConnString wraps redis.ParseURL failures.
	ErrFailedToParseRedisConnString = errors.New("redis: invalid connection URL")
	// ErrRedisNotReady means no ping succeeded within the retry budget.
	ErrRedisNotReady = errors.New("redis: server not ready")
	// ErrHealthcheckFailed is returned by the readiness check when the ping fails.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
