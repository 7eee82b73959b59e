package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/slack-go/slack"

	"github.com/example/serier/internal/persistence"
)

// ErrNoToken is returned when neither the workspace registry nor the
// fallback configuration provides a bot token for a team.
var ErrNoToken = errors.New("chat: no bot token for workspace")

// SlackGateway talks to the Slack Web API. Tokens are resolved per team from
// the workspace registry, falling back to the statically configured token
// for single-workspace installs; resolved clients are cached per token.
type SlackGateway struct {
	workspaces    persistence.WorkspaceRepository
	fallbackToken string

	mu      sync.Mutex
	clients map[string]*slack.Client
}

// NewSlackGateway builds a gateway. workspaces may be nil when only the
// fallback token is in play.
func NewSlackGateway(workspaces persistence.WorkspaceRepository, fallbackToken string) *SlackGateway {
	return &SlackGateway{
		workspaces:    workspaces,
		fallbackToken: fallbackToken,
		clients:       make(map[string]*slack.Client),
	}
}

func (g *SlackGateway) client(ctx context.Context, teamID string) (*slack.Client, error) {
	token := g.fallbackToken
	if g.workspaces != nil && teamID != "" {
		workspace, err := g.workspaces.GetWorkspace(ctx, teamID)
		switch {
		case err == nil && workspace.BotToken != "":
			token = workspace.BotToken
		case err != nil && !errors.Is(err, persistence.ErrNotFound):
			return nil, fmt.Errorf("chat: resolving workspace %s: %w", teamID, err)
		}
	}
	if token == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoToken, teamID)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if client, ok := g.clients[token]; ok {
		return client, nil
	}
	client := slack.New(token)
	g.clients[token] = client
	return client, nil
}

func (g *SlackGateway) PostMessage(ctx context.Context, teamID, channelID, fallback string, blocks []slack.Block) (string, error) {
	client, err := g.client(ctx, teamID)
	if err != nil {
		return "", err
	}
	options := []slack.MsgOption{slack.MsgOptionText(fallback, false)}
	if len(blocks) > 0 {
		options = append(options, slack.MsgOptionBlocks(blocks...))
	}
	_, ts, err := client.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return "", fmt.Errorf("chat: posting message: %w", err)
	}
	return ts, nil
}

func (g *SlackGateway) UpdateMessage(ctx context.Context, teamID, channelID, ts, fallback string, blocks []slack.Block) error {
	client, err := g.client(ctx, teamID)
	if err != nil {
		return err
	}
	options := []slack.MsgOption{slack.MsgOptionText(fallback, false)}
	if len(blocks) > 0 {
		options = append(options, slack.MsgOptionBlocks(blocks...))
	}
	_, _, _, err = client.UpdateMessageContext(ctx, channelID, ts, options...)
	if err != nil {
		return fmt.Errorf("chat: updating message %s: %w", ts, err)
	}
	return nil
}

func (g *SlackGateway) DeleteMessage(ctx context.Context, teamID, channelID, ts string) error {
	client, err := g.client(ctx, teamID)
	if err != nil {
		return err
	}
	if _, _, err := client.DeleteMessageContext(ctx, channelID, ts); err != nil {
		return fmt.Errorf("chat: deleting message %s: %w", ts, err)
	}
	return nil
}

func (g *SlackGateway) OpenDialog(ctx context.Context, teamID, triggerID string, dialog slack.Dialog) error {
	client, err := g.client(ctx, teamID)
	if err != nil {
		return err
	}
	if err := client.OpenDialogContext(ctx, triggerID, dialog); err != nil {
		return fmt.Errorf("chat: opening dialog: %w", err)
	}
	return nil
}

func (g *SlackGateway) UserTimezone(ctx context.Context, teamID, userID string) (string, error) {
	client, err := g.client(ctx, teamID)
	if err != nil {
		return "", err
	}
	user, err := client.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("chat: fetching user %s: %w", userID, err)
	}
	if user.TZ == "" {
		return "", fmt.Errorf("chat: user %s has no timezone", userID)
	}
	return user.TZ, nil
}
