// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown.
//
// Run blocks until its context is cancelled, SIGINT/SIGTERM arrives or
// Shutdown is called, then drains in-flight requests for at most the
// configured shutdown timeout. It fits errgroup directly:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	g.Go(func() error { return srv.Run(ctx, router) })
//
// HealthCheckHandler provides liveness ("ALIVE") and readiness
// ("READY"/"NOT_READY") probes over a set of dependency checks.
//
// Listen and serve failures wrap ErrStart; shutdown failures wrap ErrShutdown.
package httpserver
