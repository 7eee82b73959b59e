// Package bot routes slash commands, interactive actions and direct messages
// to the series service and renders the resulting state back into chat.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/slack-go/slack"

	"github.com/example/serier/internal/application"
	"github.com/example/serier/internal/chat"
	"github.com/example/serier/internal/draft"
	"github.com/example/serier/internal/logging"
	"github.com/example/serier/internal/slackui"
)

// ErrUnhandled marks events the bot has no route for. Callers acknowledge
// these without retry.
var ErrUnhandled = errors.New("bot: unhandled event")

var greetings = map[string]bool{
	"hi":        true,
	"hello":     true,
	"hey":       true,
	"greetings": true,
	"serier":    true,
}

// Bot wires chat traffic to the series service.
type Bot struct {
	series    *application.SeriesService
	chat      chat.Gateway
	logger    *slog.Logger
	defaultTZ string
}

// New builds a Bot. defaultTZ is used when a user's profile carries no
// usable timezone.
func New(series *application.SeriesService, gateway chat.Gateway, logger *slog.Logger, defaultTZ string) *Bot {
	return &Bot{series: series, chat: gateway, logger: logger, defaultTZ: defaultTZ}
}

// HandleSlash routes a slash command by its text argument.
func (b *Bot) HandleSlash(ctx context.Context, cmd slack.SlashCommand) error {
	text := strings.ToLower(strings.TrimSpace(cmd.Text))
	key := draft.Key{TeamID: cmd.TeamID, ChannelID: cmd.ChannelID, UserID: cmd.UserID}
	logging.Default(ctx, b.logger).InfoContext(ctx, "slash command",
		"command", cmd.Command, "text", text, "team", cmd.TeamID, "user", cmd.UserID)

	switch text {
	case "", "help":
		_, err := b.chat.PostMessage(ctx, cmd.TeamID, cmd.ChannelID, "Serier help", slackui.HelpBlocks())
		return err
	case "create":
		return b.openCreationMenu(ctx, key, "", false)
	case "read":
		return b.openSeriesPicker(ctx, key, slackui.ReadPicker)
	case "update":
		return b.openSeriesPicker(ctx, key, slackui.UpdatePicker)
	case "commands":
		_, err := b.chat.PostMessage(ctx, cmd.TeamID, cmd.ChannelID, "Serier commands", slackui.CommandsBlocks())
		return err
	default:
		_, err := b.chat.PostMessage(ctx, cmd.TeamID, cmd.ChannelID, slackui.DefaultResponseText, nil)
		return err
	}
}

// HandleMessage routes a direct message by its text.
func (b *Bot) HandleMessage(ctx context.Context, teamID, channelID, userID, text string) error {
	normalized := strings.ToLower(strings.TrimSpace(text))
	switch {
	case greetings[normalized]:
		_, err := b.chat.PostMessage(ctx, teamID, channelID, slackui.GreetingText, nil)
		return err
	case strings.HasPrefix(normalized, "help"):
		_, err := b.chat.PostMessage(ctx, teamID, channelID, "Serier help", slackui.HelpBlocks())
		return err
	default:
		_, err := b.chat.PostMessage(ctx, teamID, channelID, slackui.DefaultResponseText, nil)
		return err
	}
}

// openCreationMenu starts a draft and posts the configuration menu. When
// anchorTS is set the menu replaces that message in place; otherwise a new
// message is posted and becomes the draft's anchor.
func (b *Bot) openCreationMenu(ctx context.Context, key draft.Key, anchorTS string, fromHelp bool) error {
	tz := b.userTimezone(ctx, key.TeamID, key.UserID)
	d, err := b.series.BeginDraft(ctx, key, anchorTS, tz, fromHelp)
	if err != nil {
		return err
	}

	blocks := slackui.CreationMenu(d, false)
	if anchorTS != "" {
		return b.chat.UpdateMessage(ctx, key.TeamID, key.ChannelID, anchorTS, "Series configuration", blocks)
	}
	ts, err := b.chat.PostMessage(ctx, key.TeamID, key.ChannelID, "Series configuration", blocks)
	if err != nil {
		return err
	}
	return b.series.SetDraftAnchor(key, ts)
}

func (b *Bot) openSeriesPicker(ctx context.Context, key draft.Key, render func([]application.SeriesRef) []slack.Block) error {
	refs, err := b.series.ListSeriesByOrganizer(ctx, key.UserID)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		_, err := b.chat.PostMessage(ctx, key.TeamID, key.ChannelID, "You don't have any series yet.", slackui.NoSeriesNotice())
		return err
	}
	_, err = b.chat.PostMessage(ctx, key.TeamID, key.ChannelID, "Select a series", render(refs))
	return err
}

func (b *Bot) userTimezone(ctx context.Context, teamID, userID string) string {
	tz, err := b.chat.UserTimezone(ctx, teamID, userID)
	if err != nil || tz == "" {
		if err != nil {
			logging.Default(ctx, b.logger).WarnContext(ctx, "timezone lookup failed",
				"user", userID, "error", err, "fallback", b.defaultTZ)
		}
		return b.defaultTZ
	}
	return tz
}
