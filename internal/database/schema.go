package database

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id                 UUID PRIMARY KEY,
	status             TEXT NOT NULL DEFAULT 'in_progress',
	player_count       INT,
	rounds_played      INT,
	initial_game_state JSONB,
	final_game_state   JSONB,
	start_time         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	end_time           TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS game_results (
	game_id   UUID NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	player_id UUID NOT NULL,
	seat      INT NOT NULL,
	name      TEXT NOT NULL DEFAULT '',
	money     INT NOT NULL,
	paintings INT NOT NULL,
	place     INT NOT NULL,
	did_win   BOOLEAN NOT NULL,
	PRIMARY KEY (game_id, player_id)
);

CREATE TABLE IF NOT EXISTS game_actions (
	game_id        UUID NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	action_index   INT NOT NULL,
	actor_user_id  UUID,
	action_type    TEXT NOT NULL,
	action_payload JSONB NOT NULL DEFAULT '{}',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (game_id, action_index)
);
`

// EnsureSchema creates the tables used by this package if they are missing.
func EnsureSchema(ctx context.Context) error {
	if _, err := DB.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
