// Package logger builds *slog.Logger instances for formrelay.
//
// New takes functional options selecting format (json or text), level, static
// attributes and ContextExtractor callbacks. Extractors run on every record
// and are used to attach request-scoped values such as the request id:
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "formrelay"),
//	    logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//	        id := middleware.GetReqID(ctx)
//	        return logger.RequestID(id), id != ""
//	    }),
//	)
//
// Attribute helpers in attr.go (Form, Recipient, JobID, Error, ...) keep key
// names consistent across packages. Error returns an empty attribute for a
// nil error so it can be passed unconditionally.
package logger
