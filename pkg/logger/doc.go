// Package logger builds the slog.Logger used by the emailkit CLI.
//
// New applies functional options on top of text output at info level to
// stderr. Records are passed through LogHandlerDecorator, which adds values
// pulled from the record's context:
//
//	type runIDKey struct{}
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextValue("run_id", runIDKey{}),
//	)
//	ctx := context.WithValue(ctx, runIDKey{}, uuid.NewString())
//	log.InfoContext(ctx, "document written",
//		logger.Template("welcome"),
//		logger.Lang("en"),
//		logger.Location("dist/welcome-en.html"),
//	)
//
// The attribute helpers in attr.go keep key names consistent across packages.
package logger
