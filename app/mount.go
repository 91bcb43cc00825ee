package app

import (
	"net/http"
)

// HandleHTTP mounts a net/http.Handler on a specific HTTP method and path.
// This enables interoperability with standard library handlers or third-party
// http.Handler implementations without adapting to app.Handler.
//
// The handler receives the raw http.ResponseWriter and *http.Request. Use this
// method when you want to pass through to an existing handler as-is.
//
// Example:
//
//	a := app.New()
//	a.HandleHTTP(http.MethodGet, "/metrics", promhttp.Handler())
//	_ = http.ListenAndServe(":8080", a)
func (a *DefaultApp) HandleHTTP(method, path string, h http.Handler) {
	a.router.Handler(method, cleanPath(path), h)
}

// Mount mounts a net/http.Handler for GET, HEAD, and OPTIONS under the given
// path. Useful for mounting sub-routers or third-party handlers that already
// implement routing internally (e.g., an admin console, a debug endpoint).
//
// Example (mounting a sub-router):
//
//	sr := http.NewServeMux()
//	sr.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("v1")) })
//	a := app.New()
//	a.Mount("/ops", sr)
func (a *DefaultApp) Mount(path string, h http.Handler) {
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		a.router.Handler(m, cleanPath(path), h)
	}
}
