package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tallybook/tally_backend/internal/apperrors"
	"github.com/tallybook/tally_backend/internal/core/domain"
	portsrepo "github.com/tallybook/tally_backend/internal/core/ports/repositories"
)

type JournalEventRepository struct {
	db *pgxpool.Pool
}

func NewJournalEventRepository(db *pgxpool.Pool) *JournalEventRepository {
	return &JournalEventRepository{db: db}
}

var _ portsrepo.JournalEventRepository = (*JournalEventRepository)(nil)

func (r *JournalEventRepository) AppendJournalEvent(ctx context.Context, journalID string, event domain.JournalEvent) (int64, error) {
	payload, err := domain.EncodeJournalEvent(event)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO journal_events (aggregate_id, kind, payload)
        VALUES ($1, $2, $3)
        RETURNING id;
    `
	var sequenceID int64
	if err := r.db.QueryRow(ctx, query, journalID, int16(event.Kind()), payload).Scan(&sequenceID); err != nil {
		return 0, fmt.Errorf("%w: failed to append journal event: %w", apperrors.ErrStorage, err)
	}
	return sequenceID, nil
}

func (r *JournalEventRepository) ReplayJournalEvents(ctx context.Context, journalID string, kinds []domain.EventKind) ([]domain.JournalEvent, error) {
	query := `
        SELECT payload
        FROM journal_events
        WHERE aggregate_id = $1
        ORDER BY created_at ASC, id ASC;
    `
	args := []any{journalID}
	if len(kinds) > 0 {
		query = `
        SELECT payload
        FROM journal_events
        WHERE aggregate_id = $1 AND kind = ANY($2)
        ORDER BY created_at ASC, id ASC;
    `
		args = append(args, kindsToInt16(kinds))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to replay journal events: %w", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var events []domain.JournalEvent
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: failed to scan journal event: %w", apperrors.ErrStorage, err)
		}
		event, err := domain.DecodeJournalEvent(payload)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate journal events: %w", apperrors.ErrStorage, err)
	}
	return events, nil
}

// ListEntries replays only the AddedEntry events and pairs each with its
// append timestamp.
func (r *JournalEventRepository) ListEntries(ctx context.Context, journalID string) ([]domain.PostedTransaction, error) {
	query := `
        SELECT payload, created_at
        FROM journal_events
        WHERE aggregate_id = $1 AND kind = $2
        ORDER BY created_at ASC, id ASC;
    `
	rows, err := r.db.Query(ctx, query, journalID, int16(domain.KindAddedEntry))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list journal entries: %w", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var posted []domain.PostedTransaction
	for rows.Next() {
		var payload []byte
		var createdAt time.Time
		if err := rows.Scan(&payload, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan journal entry: %w", apperrors.ErrStorage, err)
		}
		event, err := domain.DecodeJournalEvent(payload)
		if err != nil {
			return nil, err
		}
		added, ok := event.(domain.AddedEntry)
		if !ok {
			return nil, fmt.Errorf("%w: entry row decoded to %T", apperrors.ErrCorruptEvent, event)
		}
		posted = append(posted, domain.PostedTransaction{Transaction: added.Transaction, CreatedAt: createdAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate journal entries: %w", apperrors.ErrStorage, err)
	}
	return posted, nil
}
