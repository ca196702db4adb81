// Package pgsql implements the event-store ports on PostgreSQL via pgx.
// Each aggregate category gets its own append-only table; rows are never
// updated or deleted.
package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
)

type UserEventRepository struct {
	db *pgxpool.Pool
}

func NewUserEventRepository(db *pgxpool.Pool) *UserEventRepository {
	return &UserEventRepository{db: db}
}

var _ portsrepo.UserEventRepository = (*UserEventRepository)(nil)

func (r *UserEventRepository) AppendUserEvent(ctx context.Context, userID string, event domain.UserEvent) (int64, error) {
	payload, err := domain.EncodeUserEvent(event)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO user_events (aggregate_id, kind, payload)
        VALUES ($1, $2, $3)
        RETURNING id;
    `
	var sequenceID int64
	if err := r.db.QueryRow(ctx, query, userID, int16(event.Kind()), payload).Scan(&sequenceID); err != nil {
		return 0, fmt.Errorf("%w: failed to append user event: %w", apperrors.ErrStorage, err)
	}
	return sequenceID, nil
}

func (r *UserEventRepository) ReplayUserEvents(ctx context.Context, userID string, kinds []domain.EventKind) ([]domain.UserEvent, error) {
	query := `
        SELECT payload
        FROM user_events
        WHERE aggregate_id = $1
        ORDER BY created_at ASC, id ASC;
    `
	args := []any{userID}
	if len(kinds) > 0 {
		query = `
        SELECT payload
        FROM user_events
        WHERE aggregate_id = $1 AND kind = ANY($2)
        ORDER BY created_at ASC, id ASC;
    `
		args = append(args, kindsToInt16(kinds))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to replay user events: %w", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var events []domain.UserEvent
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: failed to scan user event: %w", apperrors.ErrStorage, err)
		}
		event, err := domain.DecodeUserEvent(payload)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate user events: %w", apperrors.ErrStorage, err)
	}
	return events, nil
}

// FindUserIDByUsername resolves the aggregate whose latest naming event
// carries the username. Renamed-away and re-used names resolve to the
// current holder only.
func (r *UserEventRepository) FindUserIDByUsername(ctx context.Context, username string) (string, error) {
	query := `
        SELECT e.aggregate_id
        FROM user_events e
        WHERE e.kind IN ($2, $3)
          AND e.payload->'data'->>'username' = $1
          AND NOT EXISTS (
              SELECT 1
              FROM user_events later
              WHERE later.aggregate_id = e.aggregate_id
                AND later.kind IN ($2, $3)
                AND (later.created_at, later.id) > (e.created_at, e.id)
          )
        ORDER BY e.created_at DESC, e.id DESC
        LIMIT 1;
    `
	var userID string
	err := r.db.QueryRow(ctx, query, username,
		int16(domain.KindUserCreated), int16(domain.KindUsernameUpdated)).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrUserDoesntExist
		}
		return "", fmt.Errorf("%w: failed to find user by username: %w", apperrors.ErrStorage, err)
	}
	return userID, nil
}

func kindsToInt16(kinds []domain.EventKind) []int16 {
	out := make([]int16, len(kinds))
	for i, k := range kinds {
		out[i] = int16(k)
	}
	return out
}
