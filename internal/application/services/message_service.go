package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/providers"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
	"github.com/nwachie/skillswap/backend/internal/infrastructure/observability"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
)

// MessageService handles the per-deal conversation threads and the inbox.
// Threads are append-only; the only mutation after creation is the read
// flag flipping from unread to read.
type MessageService struct {
	messageRepo repositories.MessageRepository
	dealRepo    repositories.DealRepository
	eventBus    providers.EventBus
}

// NewMessageService creates a new message service
func NewMessageService(
	messageRepo repositories.MessageRepository,
	dealRepo repositories.DealRepository,
	eventBus providers.EventBus,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		dealRepo:    dealRepo,
		eventBus:    eventBus,
	}
}

// Send appends a message to a deal's thread. The sender must be a party to
// the deal; the receiver is always the other party. A reply must reference
// a message on the same thread with an earlier timestamp.
func (s *MessageService) Send(ctx context.Context, dealID, senderID, content string, replyToID *string) (*entities.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content is required")
	}

	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.IsParty(senderID) {
		return nil, apperrors.NewUnauthorizedError("only a deal party can message on this deal")
	}

	now := time.Now()

	if replyToID != nil {
		parent, err := s.messageRepo.GetByID(ctx, *replyToID)
		if err != nil {
			return nil, err
		}
		if parent.DealID == nil || *parent.DealID != dealID {
			return nil, apperrors.NewValidationError("reply must reference a message on the same deal")
		}
		if !parent.Timestamp.Before(now) {
			return nil, apperrors.NewValidationError("reply must reference an earlier message")
		}
	}

	message := &entities.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: deal.OtherParty(senderID),
		Content:    content,
		IsRead:     false,
		Timestamp:  now,
		DealID:     &dealID,
		ReplyToID:  replyToID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	s.publishMessageEvent(ctx, deal, senderID)
	return message, nil
}

// ListByDeal retrieves a deal's thread in timestamp order. Only a party to
// the deal may read it.
func (s *MessageService) ListByDeal(ctx context.Context, dealID, actorID string) ([]*entities.Message, error) {
	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if !deal.IsParty(actorID) {
		return nil, apperrors.NewUnauthorizedError("not a party to this deal")
	}
	return s.messageRepo.ListByDeal(ctx, dealID)
}

// ListInbox retrieves the user's received messages, newest first
func (s *MessageService) ListInbox(ctx context.Context, receiverID string, limit, offset int) ([]*entities.Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.messageRepo.ListByReceiver(ctx, receiverID, limit, offset)
}

// MarkRead flips one message to read. Only the receiver may do this, and
// a message already read stays read.
func (s *MessageService) MarkRead(ctx context.Context, messageID, actorID string) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.ReceiverID != actorID {
		return apperrors.NewUnauthorizedError("only the receiver can mark a message read")
	}
	if message.IsRead {
		return nil
	}
	return s.messageRepo.MarkRead(ctx, messageID)
}

// MarkAllRead flips every unread message for the receiver and returns how
// many were flipped
func (s *MessageService) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
	return s.messageRepo.MarkAllRead(ctx, receiverID)
}

func (s *MessageService) publishMessageEvent(ctx context.Context, deal *entities.SkillDeal, senderID string) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewDealEvent(entities.DealEventTypeMessage, deal.ID, deal.SkillID, senderID)
	channel := providers.GetUserChannel(deal.OtherParty(senderID))
	if err := s.eventBus.Publish(ctx, channel, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("channel", channel).
			Str("deal_id", deal.ID).
			Msg("failed to publish message event")
	}
}
