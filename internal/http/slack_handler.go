package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/example/serier/internal/bot"
)

type slackBot interface {
	HandleSlash(ctx context.Context, cmd slack.SlashCommand) error
	HandleInteraction(ctx context.Context, cb slack.InteractionCallback) error
	HandleMessage(ctx context.Context, teamID, channelID, userID, text string) error
}

// SlackHandler terminates the three inbound Slack endpoints.
type SlackHandler struct {
	bot       slackBot
	responder responder
	logger    *slog.Logger
}

func NewSlackHandler(b slackBot, logger *slog.Logger) *SlackHandler {
	base := defaultLogger(logger)
	return &SlackHandler{bot: b, responder: newResponder(base), logger: base}
}

func (h *SlackHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "SlackHandler", operation, attrs...)
}

// Slash handles slash command deliveries.
func (h *SlackHandler) Slash(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bot == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		h.log(r.Context(), "Slash").ErrorContext(r.Context(), "failed to parse slash command", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.bot.HandleSlash(r.Context(), cmd); err != nil {
		h.log(r.Context(), "Slash", "command", cmd.Command).ErrorContext(r.Context(), "slash command failed", "error", err)
		h.responder.acknowledge(r.Context(), w, "Sorry, something went wrong handling that command.")
		return
	}
	h.responder.acknowledge(r.Context(), w, "")
}

// Actions handles interactive payload deliveries.
func (h *SlackHandler) Actions(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bot == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	payload := r.FormValue("payload")
	if payload == "" {
		h.log(r.Context(), "Actions").ErrorContext(r.Context(), "missing interaction payload")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		h.log(r.Context(), "Actions").ErrorContext(r.Context(), "failed to decode interaction payload", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.bot.HandleInteraction(r.Context(), cb); err != nil {
		logger := h.log(r.Context(), "Actions", "interaction_type", string(cb.Type))
		if errors.Is(err, bot.ErrUnhandled) {
			logger.WarnContext(r.Context(), "no route for interaction", "error", err)
			h.responder.acknowledgeNoRetry(r.Context(), w, "App not equipped for this event")
			return
		}
		logger.ErrorContext(r.Context(), "interaction failed", "error", err)
	}
	h.responder.acknowledge(r.Context(), w, "")
}

// Events handles Events API deliveries, including the URL verification
// handshake.
func (h *SlackHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.bot == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log(r.Context(), "Events").ErrorContext(r.Context(), "failed to read event body", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		h.log(r.Context(), "Events").ErrorContext(r.Context(), "failed to parse event", "error", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			h.log(r.Context(), "Events").ErrorContext(r.Context(), "failed to decode challenge", "error", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		h.responder.acknowledge(r.Context(), w, challenge.Challenge)
		return

	case slackevents.CallbackEvent:
		h.handleCallbackEvent(r.Context(), event)
		h.responder.acknowledge(r.Context(), w, "")
		return
	}

	h.responder.acknowledgeNoRetry(r.Context(), w, "")
}

func (h *SlackHandler) handleCallbackEvent(ctx context.Context, event slackevents.EventsAPIEvent) {
	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		// Only human direct messages; the bot's own posts carry no
		// client message ID.
		if ev.ChannelType != "im" || ev.ClientMsgID == "" || ev.BotID != "" {
			return
		}
		if err := h.bot.HandleMessage(ctx, event.TeamID, ev.Channel, ev.User, ev.Text); err != nil {
			h.log(ctx, "Events", "event", "message").ErrorContext(ctx, "message handling failed", "error", err)
		}
	default:
		h.log(ctx, "Events").WarnContext(ctx, "no route for event", "event_type", event.InnerEvent.Type)
	}
}
