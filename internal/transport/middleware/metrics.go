package middleware

import (
	"net/http"
	"time"
)

// requestObserver is the subset of the metrics registry the middleware feeds.
type requestObserver interface {
	RequestStarted()
	RequestDone()
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// unmatchedRoute labels requests that no pattern matched, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics returns middleware that records request counts, latency and the
// number of in-flight requests, labelled by route pattern.
func Metrics(obs requestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			obs.RequestStarted()
			defer obs.RequestDone()

			start := time.Now()
			sw := wrapWriter(w)
			next.ServeHTTP(sw, r)

			route := routeOf(r)
			if route == "" {
				route = unmatchedRoute
			}
			obs.ObserveRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
