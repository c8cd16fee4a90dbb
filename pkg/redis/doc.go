// Package redis connects to Redis with retries and exposes a readiness check.
// The returned client backs session.RedisStore.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client)
//	ready := redis.Healthcheck(client)
//
// Connect returns ErrFailedToParseRedisConnString for a malformed URL and
// ErrRedisNotReady when the server did not answer in time.
package redis
