// Package chat abstracts the messaging platform behind a small gateway so
// the bot logic can be exercised against a recorder in tests.
package chat

import (
	"context"

	"github.com/slack-go/slack"
)

// Gateway is the messaging surface the bot needs. Message identity is the
// (channel, timestamp) pair Slack assigns on post; teamID selects which
// workspace installation the call acts in.
type Gateway interface {
	// PostMessage posts blocks to a channel and returns the message
	// timestamp. fallback is the plain-text rendering for notifications.
	PostMessage(ctx context.Context, teamID, channelID, fallback string, blocks []slack.Block) (string, error)

	// UpdateMessage replaces the blocks of an existing message in place.
	UpdateMessage(ctx context.Context, teamID, channelID, ts, fallback string, blocks []slack.Block) error

	// DeleteMessage removes a message.
	DeleteMessage(ctx context.Context, teamID, channelID, ts string) error

	// OpenDialog opens a dialog against the trigger of an interaction.
	OpenDialog(ctx context.Context, teamID, triggerID string, dialog slack.Dialog) error

	// UserTimezone returns the IANA timezone name from the user's profile.
	UserTimezone(ctx context.Context, teamID, userID string) (string, error)
}
