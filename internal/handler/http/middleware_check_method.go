package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] intended to be registered as
// the router's MethodNotAllowed handler.
//
// Chi's default is to answer 405 Method Not Allowed whenever a path matches a
// registered route but the method does not. This handler answers 404 Not
// Found instead, hiding the existence of the route from callers probing it
// with unsupported methods. If the method IS registered for the matched
// route, the request is forwarded to the router's normal pipeline.
//
// Only exact pattern matches are considered; parameterised segments are not
// expanded during the lookup.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path
		requestedHTTPMethod := r.Method

		allRoutes := router.Routes()
		var foundRoute chi.Route
		for _, route := range allRoutes {
			if route.Pattern == requestedURL {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[requestedHTTPMethod]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
