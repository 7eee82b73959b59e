package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/serier/internal/logging"
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

// acknowledge answers a Slack delivery. An empty body is the usual silent
// acknowledgment; a non-empty body on a slash response is shown to the user
// as an ephemeral message.
func (r responder) acknowledge(ctx context.Context, w http.ResponseWriter, body string) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if body == "" {
		return
	}
	if _, err := w.Write([]byte(body)); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to write response", "error", err)
	}
}

// acknowledgeNoRetry answers a delivery the bot has no route for, telling
// Slack not to redeliver it.
func (r responder) acknowledgeNoRetry(ctx context.Context, w http.ResponseWriter, body string) {
	if w == nil {
		return
	}
	w.Header().Set("X-Slack-No-Retry", "1")
	r.acknowledge(ctx, w, body)
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	return logging.Default(ctx, r.logger)
}
