package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on top of a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database, verifies the connection, and applies
// pending schema migrations.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(databaseURL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// SaveRoom upserts a room row.
func (p *Postgres) SaveRoom(ctx context.Context, rec RoomRecord) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO game_rooms (room_id, created_at, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (room_id) DO UPDATE SET status = EXCLUDED.status`,
		rec.RoomID, rec.CreatedAt, rec.Status)
	if err != nil {
		return fmt.Errorf("save room %s: %w", rec.RoomID, err)
	}
	return nil
}

// SavePlayer upserts a player row keyed by (room_id, player_number).
func (p *Postgres) SavePlayer(ctx context.Context, rec PlayerRecord) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO players (room_id, player_number, score, board, solution, finished, finish_time, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (room_id, player_number) DO UPDATE SET
			score       = EXCLUDED.score,
			board       = EXCLUDED.board,
			finished    = EXCLUDED.finished,
			finish_time = EXCLUDED.finish_time`,
		rec.RoomID, rec.Number, rec.Score, rec.Board, rec.Solution,
		rec.Finished, rec.FinishSeconds, rec.JoinedAt)
	if err != nil {
		return fmt.Errorf("save player %d in room %s: %w", rec.Number, rec.RoomID, err)
	}
	return nil
}

// DeletePlayer removes one player row.
func (p *Postgres) DeletePlayer(ctx context.Context, roomID string, number int) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM players WHERE room_id = $1 AND player_number = $2`,
		roomID, number)
	if err != nil {
		return fmt.Errorf("delete player %d in room %s: %w", number, roomID, err)
	}
	return nil
}

// DeleteRoom removes a room row; player rows cascade.
func (p *Postgres) DeleteRoom(ctx context.Context, roomID string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM game_rooms WHERE room_id = $1`, roomID)
	if err != nil {
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}
	return nil
}

// SaveHistory inserts one completed-game record.
func (p *Postgres) SaveHistory(ctx context.Context, rec HistoryRecord) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO game_history (room_id, winner_number, game_data, completed_at)
		VALUES ($1, $2, $3, $4)`,
		rec.RoomID, rec.WinnerNumber, rec.GameData, rec.CompletedAt)
	if err != nil {
		return fmt.Errorf("save history for room %s: %w", rec.RoomID, err)
	}
	return nil
}

// WaitingRooms lists rooms persisted with status waiting.
func (p *Postgres) WaitingRooms(ctx context.Context) ([]RoomRecord, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT room_id, created_at, status
		FROM game_rooms
		WHERE status = 'waiting'
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list waiting rooms: %w", err)
	}
	defer rows.Close()

	result := make([]RoomRecord, 0)
	for rows.Next() {
		var rec RoomRecord
		if err := rows.Scan(&rec.RoomID, &rec.CreatedAt, &rec.Status); err != nil {
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Leaderboard aggregates the players array inside each history snapshot.
func (p *Postgres) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT (entry->>'playerNumber')::int                       AS player_number,
		       COALESCE(SUM((entry->>'score')::int), 0)            AS total_score,
		       COUNT(*) FILTER (WHERE (entry->>'finished')::bool)  AS games_finished
		FROM game_history,
		     jsonb_array_elements(game_data->'players') AS entry
		GROUP BY player_number
		ORDER BY total_score DESC, player_number
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("aggregate leaderboard: %w", err)
	}
	defer rows.Close()

	result := make([]LeaderboardEntry, 0, limit)
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.PlayerNumber, &entry.TotalScore, &entry.GamesFinished); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
