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

type AuthEventRepository struct {
	db *pgxpool.Pool
}

func NewAuthEventRepository(db *pgxpool.Pool) *AuthEventRepository {
	return &AuthEventRepository{db: db}
}

var _ portsrepo.AuthEventRepository = (*AuthEventRepository)(nil)

func (r *AuthEventRepository) AppendAuthEvent(ctx context.Context, userID, sessionID string, kind domain.EventKind) (int64, error) {
	query := `
        INSERT INTO auth_events (user_id, session_id, kind)
        VALUES ($1, $2, $3)
        RETURNING id;
    `
	var sequenceID int64
	if err := r.db.QueryRow(ctx, query, userID, sessionID, int16(kind)).Scan(&sequenceID); err != nil {
		return 0, fmt.Errorf("%w: failed to append auth event: %w", apperrors.ErrStorage, err)
	}
	return sequenceID, nil
}

// LatestBySession returns the newest auth event for the session, nil when
// the session has never authenticated.
func (r *AuthEventRepository) LatestBySession(ctx context.Context, sessionID string) (*domain.AuthEvent, error) {
	query := `
        SELECT id, user_id, session_id, kind, created_at
        FROM auth_events
        WHERE session_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT 1;
    `
	var event domain.AuthEvent
	var kind int16
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&event.SequenceID,
		&event.UserID,
		&event.SessionID,
		&kind,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to load latest auth event: %w", apperrors.ErrStorage, err)
	}
	event.Kind = domain.EventKind(kind)
	return &event, nil
}
