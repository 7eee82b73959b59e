package sqlite

import (
	"context"
	"time"

	"github.com/example/serier/internal/persistence"
)

// UpsertWorkspace records or refreshes the bot token for an installed team.
func (s *Storage) UpsertWorkspace(ctx context.Context, workspace persistence.Workspace) error {
	now := s.now().UTC().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO workspaces (team_id, bot_token, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(team_id) DO UPDATE SET bot_token = excluded.bot_token, updated_at = excluded.updated_at`,
		workspace.TeamID, workspace.BotToken, now, now,
	)
	return mapError(err)
}

// GetWorkspace loads the installation record for a team.
func (s *Storage) GetWorkspace(ctx context.Context, teamID string) (persistence.Workspace, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT team_id, bot_token, created_at, updated_at FROM workspaces WHERE team_id = ?`, teamID)

	var (
		workspace          persistence.Workspace
		createdAt, updated int64
	)
	if err := row.Scan(&workspace.TeamID, &workspace.BotToken, &createdAt, &updated); err != nil {
		return persistence.Workspace{}, mapError(err)
	}
	workspace.CreatedAt = time.Unix(createdAt, 0).UTC()
	workspace.UpdatedAt = time.Unix(updated, 0).UTC()
	return workspace, nil
}
