package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akozyrev/folio/internal/apperrors"
	"github.com/akozyrev/folio/internal/models"
)

type ContactRepo struct {
	DB DBTX
}

const createMessage = `-- name: CreateContactMessage
INSERT INTO contact_messages (id, sender, email, subject, body, priority)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, sender, email, subject, body, priority, read
`

func (r *ContactRepo) Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	rows, _ := r.DB.Query(ctx, createMessage, uuid.New(), m.Sender, m.Email, m.Subject, m.Body, m.Priority)
	msg, err := pgx.CollectOneRow(rows, rowToContactMessage)
	if err != nil {
		return msg, fmt.Errorf("db error: %w", err)
	}
	return msg, nil
}

const listMessages = `-- name: ListContactMessages newest first
SELECT id, created_at, sender, email, subject, body, priority, read
FROM contact_messages
ORDER BY created_at DESC
`

func (r *ContactRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	rows, _ := r.DB.Query(ctx, listMessages)
	messages, err := pgx.CollectRows(rows, rowToContactMessage)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return messages, nil
}

const markMessageRead = `-- name: MarkContactMessageRead
UPDATE contact_messages
SET read = true
WHERE id = $1
RETURNING id, created_at, sender, email, subject, body, priority, read
`

func (r *ContactRepo) MarkRead(ctx context.Context, id uuid.UUID) (models.ContactMessage, error) {
	rows, _ := r.DB.Query(ctx, markMessageRead, id)
	msg, err := pgx.CollectOneRow(rows, rowToContactMessage)

	switch {
	case err == nil:
		return msg, nil
	case errors.Is(err, pgx.ErrNoRows):
		return msg, apperrors.ErrMessageNotFound
	default:
		return msg, fmt.Errorf("db error: %w", err)
	}
}

const markAllMessagesRead = `-- name: MarkAllContactMessagesRead
UPDATE contact_messages
SET read = true
WHERE NOT read
`

func (r *ContactRepo) MarkAllRead(ctx context.Context) ([]models.ContactMessage, error) {
	_, err := r.DB.Exec(ctx, markAllMessagesRead)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r.List(ctx)
}

const deleteMessage = `-- name: DeleteContactMessage
DELETE FROM contact_messages
WHERE id = $1
RETURNING id
`

func (r *ContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	rows, _ := r.DB.Query(ctx, deleteMessage, id)
	_, err := pgx.CollectOneRow(rows, pgx.RowTo[uuid.UUID])

	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrMessageNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func rowToContactMessage(row pgx.CollectableRow) (models.ContactMessage, error) {
	var m models.ContactMessage
	err := row.Scan(&m.ID, &m.CreatedAt, &m.Sender, &m.Email, &m.Subject, &m.Body, &m.Priority, &m.Read)
	return m, err
}
