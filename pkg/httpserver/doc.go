// Package httpserver runs an http.Handler with configured timeouts and shuts
// it down gracefully when the run context is cancelled.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness (no checks) and readiness checks.
// Run returns ErrStart when the listener fails and ErrShutdown when the
// graceful shutdown times out.
package httpserver
