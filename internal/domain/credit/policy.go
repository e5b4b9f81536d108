// Package credit holds the transfer policy applied when a skill deal
// completes. The policy is a pure function of the deal's start and end
// timestamps; the deal service applies its result to the two balances
// inside the completion transaction.
package credit

import (
	"time"

	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

// CreditsPerHour is the fixed exchange rate: one hour of provided time is
// worth 100 credits.
const CreditsPerHour = 100

// secondsPerCredit is the inverse rate used for the floor division
const secondsPerCredit = 3600 / CreditsPerHour

// TransferAmount computes the credits moved from requester to provider for
// a deal that ran from start to end: floor(elapsed seconds / 36). A zero
// start or end, or end before start, is a violated precondition and the
// completion that observed it must abort without changing any state.
func TransferAmount(start, end time.Time) (int64, error) {
	if start.IsZero() {
		return 0, apperrors.NewPreconditionError("deal has no start date")
	}
	if end.IsZero() {
		return 0, apperrors.NewPreconditionError("deal has no end date")
	}
	if end.Before(start) {
		return 0, apperrors.NewPreconditionError("deal end date precedes start date")
	}
	elapsed := int64(end.Sub(start) / time.Second)
	return elapsed / secondsPerCredit, nil
}
