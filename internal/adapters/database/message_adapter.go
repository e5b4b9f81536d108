package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

var messageColumns = []any{
	"id", "sender_id", "receiver_id", "content", "is_read",
	"timestamp", "skill_deal_id", "reply_to_id",
}

// MessageAdapter implements the MessageRepository interface
type MessageAdapter struct {
	run runner
}

// NewMessageAdapter creates a new message adapter on the pooled connection
func NewMessageAdapter(client *postgres.Client) repositories.MessageRepository {
	return &MessageAdapter{run: client.DB()}
}

func newMessageAdapter(run runner) *MessageAdapter {
	return &MessageAdapter{run: run}
}

// Create appends a message
func (a *MessageAdapter) Create(ctx context.Context, message *entities.Message) error {
	record := goqu.Record{
		"id":            message.ID,
		"sender_id":     message.SenderID,
		"receiver_id":   message.ReceiverID,
		"content":       message.Content,
		"is_read":       message.IsRead,
		"timestamp":     message.Timestamp,
		"skill_deal_id": message.DealID,
		"reply_to_id":   message.ReplyToID,
	}

	query, args, err := builder.Insert("messages").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.run.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create message", err)
	}

	return nil
}

// GetByID retrieves a message by ID
func (a *MessageAdapter) GetByID(ctx context.Context, id string) (*entities.Message, error) {
	query, args, err := builder.Select(messageColumns...).
		From("messages").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	message, err := scanMessage(a.run.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("message with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get message", err)
	}

	return message, nil
}

// ListByDeal retrieves a deal's thread in timestamp order
func (a *MessageAdapter) ListByDeal(ctx context.Context, dealID string) ([]*entities.Message, error) {
	query, args, err := builder.Select(messageColumns...).
		From("messages").
		Where(goqu.Ex{"skill_deal_id": dealID}).
		Order(goqu.I("timestamp").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryMessages(ctx, query, args)
}

// ListByReceiver retrieves a user's inbox, newest first
func (a *MessageAdapter) ListByReceiver(ctx context.Context, receiverID string, limit, offset int) ([]*entities.Message, error) {
	ds := builder.Select(messageColumns...).
		From("messages").
		Where(goqu.Ex{"receiver_id": receiverID}).
		Order(goqu.I("timestamp").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryMessages(ctx, query, args)
}

// MarkRead flips a single message's read flag. Already-read messages are
// left untouched; the flag only ever moves false→true.
func (a *MessageAdapter) MarkRead(ctx context.Context, id string) error {
	query, args, err := builder.Update("messages").
		Set(goqu.Record{"is_read": true}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.run.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to mark message read", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("message with id %s not found", id))
	}

	return nil
}

// MarkAllRead flips every unread message for the receiver
func (a *MessageAdapter) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
	query, args, err := builder.Update("messages").
		Set(goqu.Record{"is_read": true}).
		Where(goqu.Ex{"receiver_id": receiverID, "is_read": false}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.run.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to mark messages read", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get rows affected", err)
	}

	return rowsAffected, nil
}

// CountUnread counts unread messages for the receiver
func (a *MessageAdapter) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	query, args, err := builder.Select(goqu.COUNT("*")).
		From("messages").
		Where(goqu.Ex{"receiver_id": receiverID, "is_read": false}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int64
	if err := a.run.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count unread messages", err)
	}

	return count, nil
}

func (a *MessageAdapter) queryMessages(ctx context.Context, query string, args []any) ([]*entities.Message, error) {
	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list messages", err)
	}
	defer rows.Close()

	var messages []*entities.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan message", err)
		}
		messages = append(messages, message)
	}

	return messages, nil
}

func scanMessage(row rowScanner) (*entities.Message, error) {
	message := &entities.Message{}
	var dealID, replyToID sql.NullString
	var timestamp time.Time

	err := row.Scan(
		&message.ID,
		&message.SenderID,
		&message.ReceiverID,
		&message.Content,
		&message.IsRead,
		&timestamp,
		&dealID,
		&replyToID,
	)
	if err != nil {
		return nil, err
	}

	message.Timestamp = timestamp
	if dealID.Valid {
		message.DealID = &dealID.String
	}
	if replyToID.Valid {
		message.ReplyToID = &replyToID.String
	}

	return message, nil
}
