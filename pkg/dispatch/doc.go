// Package dispatch decouples the webhook response from email delivery.
//
// A Dispatcher receives a Job for every accepted submission. Pool is the
// default asynchronous implementation: a bounded queue drained by a fixed
// number of workers. Dispatch never blocks; a full queue yields ErrQueueFull
// so the HTTP layer can answer 503 instead of piling up goroutines. Stop
// drains what is already queued before returning.
//
// Sync delivers inline and returns the mailer.Result, for deployments that
// prefer a slower webhook response over losing queued mail on restart.
//
// Each result is passed to the configured ResultHandlers; LogHandler and
// MetricsHandler are provided. Delivery failures never surface as errors
// from Dispatch.
//
//	d, pool, err := dispatch.New(cfg, mailer.New(sender, from),
//	    dispatch.WithLogger(log),
//	    dispatch.WithResultHandlers(dispatch.LogHandler(log)),
//	)
//	if pool != nil {
//	    g.Go(pool.Run(ctx))
//	}
package dispatch
