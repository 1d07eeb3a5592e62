// Package redis connects to the optional Redis server used for sharing
// duplicate-submission state between instances.
//
// Connect retries the initial ping according to Config; Healthcheck adapts
// a client to the readiness probe of pkg/httpserver.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Errors wrap the go-redis cause with errors.Join, so both the sentinel and
// the driver error match errors.Is.
package redis
