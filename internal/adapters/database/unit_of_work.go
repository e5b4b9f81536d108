package database

import (
	"context"

	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

// UnitOfWork implements repositories.UnitOfWork on a serializable postgres
// transaction. All repositories handed to the callback run on the same
// transaction, so a deal transition, its timestamps, the credit transfer
// and the system message commit or roll back as one.
type UnitOfWork struct {
	client *postgres.Client
}

// NewUnitOfWork creates a new postgres-backed unit of work
func NewUnitOfWork(client *postgres.Client) repositories.UnitOfWork {
	return &UnitOfWork{client: client}
}

// Execute runs fn inside a serializable transaction
func (u *UnitOfWork) Execute(ctx context.Context, fn func(tx repositories.TxRepositories) error) error {
	tx, err := u.client.BeginSerializableTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	if err := fn(&txRepositories{run: tx}); err != nil {
		_ = tx.Rollback()
		if isSerializationFailure(err) {
			return apperrors.NewInvalidTransitionError("lost a race with a concurrent update")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return apperrors.NewInvalidTransitionError("lost a race with a concurrent update")
		}
		return apperrors.NewInternalError("failed to commit transaction", err)
	}

	return nil
}

// txRepositories hands out adapters scoped to one transaction
type txRepositories struct {
	run runner
}

func (t *txRepositories) Deals() repositories.DealRepository {
	return newDealAdapter(t.run)
}

func (t *txRepositories) Skills() repositories.SkillRepository {
	return newSkillAdapter(t.run)
}

func (t *txRepositories) Messages() repositories.MessageRepository {
	return newMessageAdapter(t.run)
}

func (t *txRepositories) Reviews() repositories.ReviewRepository {
	return newReviewAdapter(t.run)
}

func (t *txRepositories) Profiles() repositories.ProfileRepository {
	return newProfileAdapter(t.run)
}

func (t *txRepositories) Ledger() repositories.LedgerRepository {
	return newProfileAdapter(t.run)
}
