package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nwachie/skillswap/backend/internal/domain/credit"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/providers"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/observability"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

// System notices appended to the deal thread on each transition. They are
// stored as regular messages authored by the acting party, so the receiving
// party's unread counter picks them up like any other message.
const (
	noticeDealRequested = "New deal request for your skill %q."
	noticeDealAccepted  = "Your deal request for %q was accepted."
	noticeDealCompleted = "The deal for %q was completed. %d credits were transferred."
	noticeDealCancelled = "The deal for %q was cancelled."
)

// DealService owns the deal lifecycle. Every transition runs as one
// serializable unit of work covering the status change, its timestamps,
// the system notice and, on completion, both balance writes and the
// transfer audit row. Events go out only after commit.
type DealService struct {
	dealRepo repositories.DealRepository
	uow      repositories.UnitOfWork
	eventBus providers.EventBus
	metrics  *observability.Metrics
}

// NewDealService creates a new deal service
func NewDealService(
	dealRepo repositories.DealRepository,
	uow repositories.UnitOfWork,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *DealService {
	return &DealService{
		dealRepo: dealRepo,
		uow:      uow,
		eventBus: eventBus,
		metrics:  metrics,
	}
}

// Create opens a pending deal for a skill on behalf of the requester. The
// provider is snapshotted from the skill's current owner; a later ownership
// change does not move the deal.
func (s *DealService) Create(ctx context.Context, skillID, requesterID string) (*entities.SkillDeal, error) {
	ctx, span := observability.StartSpan(ctx, "DealService.Create")
	defer span.End()

	var deal *entities.SkillDeal
	err := s.uow.Execute(ctx, func(tx repositories.TxRepositories) error {
		skill, err := tx.Skills().GetByID(ctx, skillID)
		if err != nil {
			return err
		}

		if skill.OwnerID == requesterID {
			return apperrors.NewValidationError("cannot request a deal for your own skill")
		}

		exists, err := tx.Deals().PendingExists(ctx, skillID, skill.OwnerID, requesterID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError("a pending deal for this skill already exists")
		}

		now := time.Now()
		deal = &entities.SkillDeal{
			ID:          uuid.New().String(),
			SkillID:     skillID,
			RequesterID: requesterID,
			ProviderID:  skill.OwnerID,
			Status:      entities.DealStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Deals().Create(ctx, deal); err != nil {
			return err
		}

		notice := fmt.Sprintf(noticeDealRequested, skill.Name)
		return s.appendNotice(ctx, tx, deal, requesterID, notice)
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(ctx, deal.Status)
	s.publishEvent(ctx, entities.DealEventTypeCreated, deal, requesterID, 0)
	return deal, nil
}

// Accept moves a pending deal to active. Only the provider may accept.
func (s *DealService) Accept(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error) {
	ctx, span := observability.StartSpan(ctx, "DealService.Accept")
	defer span.End()

	var deal *entities.SkillDeal
	err := s.uow.Execute(ctx, func(tx repositories.TxRepositories) error {
		var err error
		deal, err = tx.Deals().GetByID(ctx, dealID)
		if err != nil {
			return err
		}

		if actorID != deal.ProviderID {
			return apperrors.NewUnauthorizedError("only the provider can accept a deal")
		}
		if !deal.Status.CanTransitionTo(entities.DealStatusActive) {
			return apperrors.NewInvalidTransitionError(
				fmt.Sprintf("cannot accept a deal in status %s", deal.Status))
		}

		now := time.Now()
		swapped, err := tx.Deals().UpdateStatus(ctx, dealID, entities.DealStatusPending, entities.DealStatusActive, &now, nil)
		if err != nil {
			return err
		}
		if !swapped {
			return apperrors.NewInvalidTransitionError("deal is no longer pending")
		}
		deal.Status = entities.DealStatusActive
		deal.StartDate = &now
		deal.UpdatedAt = now

		skill, err := tx.Skills().GetByID(ctx, deal.SkillID)
		if err != nil {
			return err
		}
		notice := fmt.Sprintf(noticeDealAccepted, skill.Name)
		return s.appendNotice(ctx, tx, deal, actorID, notice)
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(ctx, deal.Status)
	s.publishEvent(ctx, entities.DealEventTypeAccepted, deal, actorID, 0)
	return deal, nil
}

// Complete finishes an active deal and settles credits: the elapsed time
// between start and end converts to credits, the provider gains them and
// the requester loses them, in the same transaction as the status change.
// A failed transfer rolls the whole transition back.
func (s *DealService) Complete(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error) {
	ctx, span := observability.StartSpan(ctx, "DealService.Complete")
	defer span.End()

	var (
		deal   *entities.SkillDeal
		amount int64
	)
	err := s.uow.Execute(ctx, func(tx repositories.TxRepositories) error {
		var err error
		deal, err = tx.Deals().GetByID(ctx, dealID)
		if err != nil {
			return err
		}

		if !deal.IsParty(actorID) {
			return apperrors.NewUnauthorizedError("only a deal party can complete a deal")
		}
		if !deal.Status.CanTransitionTo(entities.DealStatusCompleted) {
			return apperrors.NewInvalidTransitionError(
				fmt.Sprintf("cannot complete a deal in status %s", deal.Status))
		}

		var start time.Time
		if deal.StartDate != nil {
			start = *deal.StartDate
		}
		now := time.Now()
		amount, err = credit.TransferAmount(start, now)
		if err != nil {
			return err
		}

		swapped, err := tx.Deals().UpdateStatus(ctx, dealID, entities.DealStatusActive, entities.DealStatusCompleted, nil, &now)
		if err != nil {
			return err
		}
		if !swapped {
			return apperrors.NewInvalidTransitionError("deal is no longer active")
		}
		deal.Status = entities.DealStatusCompleted
		deal.EndDate = &now
		deal.UpdatedAt = now

		if err := tx.Ledger().LockBalances(ctx, deal.ProviderID, deal.RequesterID); err != nil {
			return err
		}
		if err := tx.Ledger().AdjustBalance(ctx, deal.ProviderID, amount); err != nil {
			return err
		}
		if err := tx.Ledger().AdjustBalance(ctx, deal.RequesterID, -amount); err != nil {
			return err
		}
		if err := tx.Ledger().RecordTransfer(ctx, &entities.CreditTransfer{
			ID:         uuid.New().String(),
			DealID:     deal.ID,
			FromUserID: deal.RequesterID,
			ToUserID:   deal.ProviderID,
			Amount:     amount,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		skill, err := tx.Skills().GetByID(ctx, deal.SkillID)
		if err != nil {
			return err
		}
		notice := fmt.Sprintf(noticeDealCompleted, skill.Name, amount)
		return s.appendNotice(ctx, tx, deal, actorID, notice)
	})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("deal_id", deal.ID).
		Int64("credits", amount).
		Str("provider_id", deal.ProviderID).
		Str("requester_id", deal.RequesterID).
		Msg("deal completed, credits transferred")

	s.recordTransition(ctx, deal.Status)
	if s.metrics != nil {
		observability.RecordCreditsMoved(ctx, s.metrics, amount)
	}
	s.publishEvent(ctx, entities.DealEventTypeCompleted, deal, actorID, amount)
	return deal, nil
}

// Cancel ends a pending or active deal. Credits never move on cancellation.
func (s *DealService) Cancel(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error) {
	ctx, span := observability.StartSpan(ctx, "DealService.Cancel")
	defer span.End()

	var deal *entities.SkillDeal
	err := s.uow.Execute(ctx, func(tx repositories.TxRepositories) error {
		var err error
		deal, err = tx.Deals().GetByID(ctx, dealID)
		if err != nil {
			return err
		}

		if !deal.IsParty(actorID) {
			return apperrors.NewUnauthorizedError("only a deal party can cancel a deal")
		}
		if !deal.Status.CanTransitionTo(entities.DealStatusCancelled) {
			return apperrors.NewInvalidTransitionError(
				fmt.Sprintf("cannot cancel a deal in status %s", deal.Status))
		}

		from := deal.Status
		now := time.Now()
		swapped, err := tx.Deals().UpdateStatus(ctx, dealID, from, entities.DealStatusCancelled, nil, nil)
		if err != nil {
			return err
		}
		if !swapped {
			return apperrors.NewInvalidTransitionError(
				fmt.Sprintf("deal is no longer %s", from))
		}
		deal.Status = entities.DealStatusCancelled
		deal.UpdatedAt = now

		skill, err := tx.Skills().GetByID(ctx, deal.SkillID)
		if err != nil {
			return err
		}
		notice := fmt.Sprintf(noticeDealCancelled, skill.Name)
		return s.appendNotice(ctx, tx, deal, actorID, notice)
	})
	if err != nil {
		return nil, err
	}

	s.recordTransition(ctx, deal.Status)
	s.publishEvent(ctx, entities.DealEventTypeCancelled, deal, actorID, 0)
	return deal, nil
}

// Get retrieves a deal. Only a party to the deal may see it.
func (s *DealService) Get(ctx context.Context, dealID, actorID string) (*entities.SkillDeal, error) {
	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.IsParty(actorID) {
		return nil, apperrors.NewUnauthorizedError("not a party to this deal")
	}
	return deal, nil
}

// ListForUser retrieves the user's deals, optionally filtered by role and
// status
func (s *DealService) ListForUser(ctx context.Context, userID string, filter repositories.DealFilter) ([]*entities.SkillDeal, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.dealRepo.ListForUser(ctx, userID, filter)
}

// appendNotice writes the transition's system message to the other party
// inside the transition's transaction
func (s *DealService) appendNotice(ctx context.Context, tx repositories.TxRepositories, deal *entities.SkillDeal, actorID, content string) error {
	dealID := deal.ID
	return tx.Messages().Create(ctx, &entities.Message{
		ID:         uuid.New().String(),
		SenderID:   actorID,
		ReceiverID: deal.OtherParty(actorID),
		Content:    content,
		IsRead:     false,
		Timestamp:  time.Now(),
		DealID:     &dealID,
	})
}

func (s *DealService) recordTransition(ctx context.Context, to entities.DealStatus) {
	if s.metrics == nil {
		return
	}
	observability.RecordTransition(ctx, s.metrics, string(to))
}

// publishEvent fans the committed transition out to the firehose channel
// and both parties' channels. Failures are logged, never surfaced: the
// transaction already committed.
func (s *DealService) publishEvent(ctx context.Context, eventType entities.DealEventType, deal *entities.SkillDeal, actorID string, credits int64) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewDealEvent(eventType, deal.ID, deal.SkillID, actorID)
	event.Credits = credits

	channels := []string{
		providers.EventChannelDealUpdates,
		providers.GetUserChannel(deal.ProviderID),
		providers.GetUserChannel(deal.RequesterID),
	}
	for _, channel := range channels {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("channel", channel).
				Str("deal_id", deal.ID).
				Msg("failed to publish deal event")
		}
	}
}
