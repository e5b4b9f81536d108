package repositories

import (
	"context"
)

// TxRepositories bundles repositories scoped to a single transaction.
// Everything read or written through it shares one atomic unit of work.
type TxRepositories interface {
	Deals() DealRepository
	Skills() SkillRepository
	Messages() MessageRepository
	Reviews() ReviewRepository
	Profiles() ProfileRepository
	Ledger() LedgerRepository
}

// UnitOfWork executes a function inside a serializable transaction. If the
// function returns an error the transaction rolls back and no effect is
// observable; otherwise all writes commit together. Every deal transition
// and its side effects (timestamps, credit transfer, system message) runs
// through this, which is what makes the state machine's all-or-nothing
// guarantee hold under concurrent callers.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx TxRepositories) error) error
}
