// Package dedupe suppresses repeated deliveries of the same form submission.
//
// Webflow retries webhooks it considers failed, so one submission can arrive
// more than once. Guard remembers submission ids for a TTL in a Store:
// MemoryStore for a single instance, RedisStore (SET NX with expiry) when
// several instances share the load.
package dedupe
