// internal/database/game.go
package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/modernart/internal/game"
	"github.com/jason-s-yu/modernart/internal/models"
)

// ResultRow is one player's final line in game_results.
type ResultRow struct {
	GameID    uuid.UUID
	PlayerID  uuid.UUID
	Seat      int
	Name      string
	Money     int
	Paintings int
	Place     int
	DidWin    bool
}

// BuildResultRows lists players in seat order with their place from
// game.Standings. Every player in winners is marked as a winner.
func BuildResultRows(gameID uuid.UUID, players []models.Player, winners []uuid.UUID) []ResultRow {
	won := make(map[uuid.UUID]bool, len(winners))
	for _, w := range winners {
		won[w] = true
	}
	places := make(map[uuid.UUID]int, len(players))
	for _, st := range game.Standings(players) {
		places[st.Player.ID] = st.Place
	}
	rows := make([]ResultRow, len(players))
	for i, p := range players {
		rows[i] = ResultRow{
			GameID:    gameID,
			PlayerID:  p.ID,
			Seat:      i,
			Name:      p.Name,
			Money:     p.Money,
			Paintings: p.PaintingCount(),
			Place:     places[p.ID],
			DidWin:    won[p.ID],
		}
	}
	return rows
}

// RecordGameResults persists the final outcome of a game: the game row is
// marked completed and one game_results row is upserted per player.
func RecordGameResults(ctx context.Context, gameID uuid.UUID, players []models.Player, winners []uuid.UUID, roundsPlayed int) error {
	rows := BuildResultRows(gameID, players, winners)
	err := pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		upsertGame := `
			INSERT INTO games (id, status, player_count, rounds_played, end_time)
			VALUES ($1, 'completed', $2, $3, NOW())
			ON CONFLICT (id) DO UPDATE
			SET status = 'completed', player_count = $2, rounds_played = $3, end_time = NOW()
		`
		if _, e := tx.Exec(ctx, upsertGame, gameID, len(players), roundsPlayed); e != nil {
			return e
		}

		q := `
			INSERT INTO game_results (game_id, player_id, seat, name, money, paintings, place, did_win)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (game_id, player_id)
			DO UPDATE SET money=$5, paintings=$6, place=$7, did_win=$8
		`
		for _, r := range rows {
			if _, e := tx.Exec(ctx, q, r.GameID, r.PlayerID, r.Seat, r.Name, r.Money, r.Paintings, r.Place, r.DidWin); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("tx upsert game or results: %w", err)
	}
	return nil
}

// GetGameResults loads the stored results of a game in seat order.
func GetGameResults(ctx context.Context, gameID uuid.UUID) ([]ResultRow, error) {
	q := `
		SELECT game_id, player_id, seat, name, money, paintings, place, did_win
		FROM game_results
		WHERE game_id = $1
		ORDER BY seat
	`
	rows, err := DB.Query(ctx, q, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResultRow
	for rows.Next() {
		var r ResultRow
		if err := rows.Scan(&r.GameID, &r.PlayerID, &r.Seat, &r.Name, &r.Money, &r.Paintings, &r.Place, &r.DidWin); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StoreGameState writes snapshot as JSON into the initial_game_state or
// final_game_state column, creating the game row when needed.
func StoreGameState(ctx context.Context, gameID uuid.UUID, final bool, snapshot interface{}) error {
	js, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal game snapshot: %w", err)
	}
	column := "initial_game_state"
	if final {
		column = "final_game_state"
	}
	q := fmt.Sprintf(`
		INSERT INTO games (id, status, %[1]s)
		VALUES ($1, 'in_progress', $2)
		ON CONFLICT (id)
		DO UPDATE SET %[1]s = EXCLUDED.%[1]s
	`, column)
	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, gameID, js)
		return e
	})
	if err != nil {
		return fmt.Errorf("storing %s in DB: %w", column, err)
	}
	return nil
}
