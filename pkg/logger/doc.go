// Package logger builds *slog.Logger instances with functional options and
// provides attribute helpers so field names stay consistent across packages.
//
// New picks a text or JSON handler and applies static attributes. Context
// extractors registered with WithContextExtractors or WithContextValue add
// attributes taken from the record's context (for example a request id)
// each time a record is handled.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	logger.SetAsDefault(log)
//
//	log.ErrorContext(ctx, "failed to save temp data",
//	    logger.Component("tempdata"),
//	    logger.Error(err),
//	)
//
// Components that log take a *slog.Logger through an option and default to
// Discard.
//
// Error and Errors return an empty attribute for nil errors, which slog
// drops, so callers need no nil check.
package logger
