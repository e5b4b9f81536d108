package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

// ProfileAdapter implements ProfileRepository and LedgerRepository. Both
// operate on the user_profiles table; the ledger side also writes the
// credit_transfers audit table.
type ProfileAdapter struct {
	run runner
}

// NewProfileAdapter creates a new profile adapter on the pooled connection
func NewProfileAdapter(client *postgres.Client) *ProfileAdapter {
	return &ProfileAdapter{run: client.DB()}
}

func newProfileAdapter(run runner) *ProfileAdapter {
	return &ProfileAdapter{run: run}
}

var (
	_ repositories.ProfileRepository = (*ProfileAdapter)(nil)
	_ repositories.LedgerRepository  = (*ProfileAdapter)(nil)
)

// Create creates a new profile with its starting credit balance
func (a *ProfileAdapter) Create(ctx context.Context, profile *entities.UserProfile) error {
	record := goqu.Record{
		"user_id":      profile.UserID,
		"display_name": profile.DisplayName,
		"location":     profile.Location,
		"bio":          profile.Bio,
		"credits":      profile.Credits,
		"created_at":   profile.CreatedAt,
		"updated_at":   profile.UpdatedAt,
	}

	query, args, err := builder.Insert("user_profiles").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.run.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("profile already exists for this user")
		}
		return apperrors.NewInternalError("failed to create profile", err)
	}

	return nil
}

// GetByUserID retrieves a profile by user ID
func (a *ProfileAdapter) GetByUserID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	query, args, err := builder.Select(
		"user_id", "display_name", "location", "bio",
		"credits", "created_at", "updated_at",
	).From("user_profiles").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile := &entities.UserProfile{}
	err = a.run.QueryRowContext(ctx, query, args...).Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.Location,
		&profile.Bio,
		&profile.Credits,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile for user %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get profile", err)
	}

	return profile, nil
}

// Balance returns the user's current credit balance
func (a *ProfileAdapter) Balance(ctx context.Context, userID string) (int64, error) {
	query, args, err := builder.Select("credits").
		From("user_profiles").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build query", err)
	}

	var balance int64
	err = a.run.QueryRowContext(ctx, query, args...).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, apperrors.NewNotFoundError(fmt.Sprintf("profile for user %s not found", userID))
	}
	if err != nil {
		return 0, apperrors.NewInternalError("failed to get balance", err)
	}

	return balance, nil
}

// LockBalances acquires row locks on both users' balances. Rows are locked
// in ascending user-id order regardless of argument order, so two
// completions between the same pair of users always take the locks in the
// same sequence.
func (a *ProfileAdapter) LockBalances(ctx context.Context, userA, userB string) error {
	query, args, err := builder.Select("user_id").
		From("user_profiles").
		Where(goqu.C("user_id").In(userA, userB)).
		Order(goqu.C("user_id").Asc()).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build lock query", err)
	}

	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to lock balances", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return apperrors.NewInternalError("failed to scan locked row", err)
		}
		locked++
	}

	if locked != 2 {
		return apperrors.NewNotFoundError("one or both profiles not found for balance lock")
	}

	return nil
}

// AdjustBalance adds delta to the user's balance. Deltas may drive the
// balance negative; there is deliberately no floor.
func (a *ProfileAdapter) AdjustBalance(ctx context.Context, userID string, delta int64) error {
	query, args, err := builder.Update("user_profiles").
		Set(goqu.Record{
			"credits":    goqu.L("credits + ?", delta),
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.run.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to adjust balance", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("profile for user %s not found", userID))
	}

	return nil
}

// RecordTransfer writes the completion's audit row
func (a *ProfileAdapter) RecordTransfer(ctx context.Context, transfer *entities.CreditTransfer) error {
	record := goqu.Record{
		"id":           transfer.ID,
		"deal_id":      transfer.DealID,
		"from_user_id": transfer.FromUserID,
		"to_user_id":   transfer.ToUserID,
		"amount":       transfer.Amount,
		"created_at":   transfer.CreatedAt,
	}

	query, args, err := builder.Insert("credit_transfers").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.run.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("transfer already recorded for this deal")
		}
		return apperrors.NewInternalError("failed to record transfer", err)
	}

	return nil
}

// ListTransfersForUser retrieves transfers the user participated in
func (a *ProfileAdapter) ListTransfersForUser(ctx context.Context, userID string, limit int) ([]*entities.CreditTransfer, error) {
	ds := builder.Select(
		"id", "deal_id", "from_user_id", "to_user_id", "amount", "created_at",
	).From("credit_transfers").
		Where(goqu.Or(
			goqu.Ex{"from_user_id": userID},
			goqu.Ex{"to_user_id": userID},
		)).
		Order(goqu.I("created_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list transfers", err)
	}
	defer rows.Close()

	var transfers []*entities.CreditTransfer
	for rows.Next() {
		transfer := &entities.CreditTransfer{}
		err := rows.Scan(
			&transfer.ID,
			&transfer.DealID,
			&transfer.FromUserID,
			&transfer.ToUserID,
			&transfer.Amount,
			&transfer.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan transfer", err)
		}
		transfers = append(transfers, transfer)
	}

	return transfers, nil
}
