package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterConfig collects the pieces the router mounts.
type RouterConfig struct {
	Slack *SlackHandler

	// Middleware wraps the whole router, outermost first.
	Middleware []func(http.Handler) http.Handler
}

// NewRouter mounts the Slack endpoints and wraps them in the configured
// middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()

	if cfg.Slack != nil {
		router.HandleFunc("/slash", cfg.Slack.Slash).Methods(http.MethodPost)
		router.HandleFunc("/actions", cfg.Slack.Actions).Methods(http.MethodPost)
		router.HandleFunc("/events", cfg.Slack.Events).Methods(http.MethodPost)
	}

	var handler http.Handler = router
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}
	return handler
}
