package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nwachie/skillswap/backend/internal/application/services"
	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	apperrors "github.com/nwachie/skillswap/backend/pkg/errors"
	"github.com/nwachie/skillswap/backend/tests/mocks"
)

func newMessageService(t *testing.T) (*services.MessageService, *mocks.MockMessageRepository, *mocks.MockDealRepository) {
	messageRepo := mocks.NewMockMessageRepository(t)
	dealRepo := mocks.NewMockDealRepository(t)
	service := services.NewMessageService(messageRepo, dealRepo, nil)
	return service, messageRepo, dealRepo
}

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to the other party", func(t *testing.T) {
		service, messageRepo, dealRepo := newMessageService(t)

		dealRepo.On("GetByID", mock.Anything, "deal-1").Return(activeDeal(), nil)
		messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *entities.Message) bool {
			return m.SenderID == "requester-1" &&
				m.ReceiverID == "provider-1" &&
				m.Content == "when do we start?" &&
				!m.IsRead &&
				m.DealID != nil && *m.DealID == "deal-1"
		})).Return(nil)

		message, err := service.Send(ctx, "deal-1", "requester-1", "when do we start?", nil)

		require.NoError(t, err)
		assert.Equal(t, "provider-1", message.ReceiverID)
	})

	t.Run("rejects a sender who is not a party", func(t *testing.T) {
		service, _, dealRepo := newMessageService(t)

		dealRepo.On("GetByID", mock.Anything, "deal-1").Return(activeDeal(), nil)

		_, err := service.Send(ctx, "deal-1", "someone-else", "hello", nil)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("rejects empty content", func(t *testing.T) {
		service, _, _ := newMessageService(t)

		_, err := service.Send(ctx, "deal-1", "requester-1", "   ", nil)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("reply chains stay on the same thread", func(t *testing.T) {
		service, messageRepo, dealRepo := newMessageService(t)

		otherDealID := "deal-2"
		parentID := "msg-parent"
		dealRepo.On("GetByID", mock.Anything, "deal-1").Return(activeDeal(), nil)
		messageRepo.On("GetByID", mock.Anything, parentID).Return(&entities.Message{
			ID:         parentID,
			SenderID:   "provider-1",
			ReceiverID: "requester-1",
			Timestamp:  time.Now().Add(-time.Minute),
			DealID:     &otherDealID,
		}, nil)

		_, err := service.Send(ctx, "deal-1", "requester-1", "re: that", &parentID)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("reply to an earlier message succeeds", func(t *testing.T) {
		service, messageRepo, dealRepo := newMessageService(t)

		dealID := "deal-1"
		parentID := "msg-parent"
		dealRepo.On("GetByID", mock.Anything, "deal-1").Return(activeDeal(), nil)
		messageRepo.On("GetByID", mock.Anything, parentID).Return(&entities.Message{
			ID:         parentID,
			SenderID:   "provider-1",
			ReceiverID: "requester-1",
			Timestamp:  time.Now().Add(-time.Minute),
			DealID:     &dealID,
		}, nil)
		messageRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *entities.Message) bool {
			return m.ReplyToID != nil && *m.ReplyToID == parentID
		})).Return(nil)

		message, err := service.Send(ctx, "deal-1", "requester-1", "re: that", &parentID)

		require.NoError(t, err)
		require.NotNil(t, message.ReplyToID)
	})
}

func TestMessageService_MarkRead(t *testing.T) {
	ctx := context.Background()

	unread := func() *entities.Message {
		return &entities.Message{
			ID:         "msg-1",
			SenderID:   "provider-1",
			ReceiverID: "requester-1",
			Content:    "hi",
			IsRead:     false,
			Timestamp:  time.Now().Add(-time.Minute),
		}
	}

	t.Run("receiver marks a message read", func(t *testing.T) {
		service, messageRepo, _ := newMessageService(t)

		messageRepo.On("GetByID", mock.Anything, "msg-1").Return(unread(), nil)
		messageRepo.On("MarkRead", mock.Anything, "msg-1").Return(nil)

		err := service.MarkRead(ctx, "msg-1", "requester-1")

		assert.NoError(t, err)
	})

	t.Run("a read message stays read without a write", func(t *testing.T) {
		service, messageRepo, _ := newMessageService(t)

		message := unread()
		message.IsRead = true
		messageRepo.On("GetByID", mock.Anything, "msg-1").Return(message, nil)

		err := service.MarkRead(ctx, "msg-1", "requester-1")

		assert.NoError(t, err)
		messageRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("only the receiver may mark read", func(t *testing.T) {
		service, messageRepo, _ := newMessageService(t)

		messageRepo.On("GetByID", mock.Anything, "msg-1").Return(unread(), nil)

		err := service.MarkRead(ctx, "msg-1", "provider-1")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})
}

func TestMessageService_ListByDeal(t *testing.T) {
	ctx := context.Background()

	t.Run("party reads the thread", func(t *testing.T) {
		service, messageRepo, dealRepo := newMessageService(t)

		dealRepo.On("GetByID", mock.Anything, "deal-1").Return(activeDeal(), nil)
		messageRepo.On("ListByDeal", mock.Anything, "deal-1").
			Return([]*entities.Message{{ID: "msg-1"}}, nil)

		messages, err := service.ListByDeal(ctx, "deal-1", "provider-1")

		require.NoError(t, err)
		assert.Len(t, messages, 1)
	})

	t.Run("outsider is rejected", func(t *testing.T) {
		service, _, dealRepo := newMessageService(t)

		dealRepo.On("GetByID", mock.Anything, "deal-1").Return(activeDeal(), nil)

		_, err := service.ListByDeal(ctx, "deal-1", "someone-else")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})
}

func TestMessageService_MarkAllRead(t *testing.T) {
	service, messageRepo, _ := newMessageService(t)

	messageRepo.On("MarkAllRead", mock.Anything, "requester-1").Return(int64(3), nil)

	count, err := service.MarkAllRead(context.Background(), "requester-1")

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
