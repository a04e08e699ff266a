package workerclient

import "net/http"

// newBoundedTransport returns an http.RoundTripper with a bounded
// per-host connection pool, called for by spec section 4.5. resty itself
// has no pool-size knob, so the pool is configured on the underlying
// http.Transport it wraps.
func newBoundedTransport(maxConns int) http.RoundTripper {
	if maxConns <= 0 {
		maxConns = 20
	}
	return &http.Transport{
		MaxConnsPerHost:     maxConns,
		MaxIdleConnsPerHost: maxConns,
	}
}
