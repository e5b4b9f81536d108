package services

import (
	"context"

	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
)

// NotificationService derives dashboard badge counts. Every call recomputes
// from the store; there is no cache, so the counts always match persisted
// state.
type NotificationService struct {
	messageRepo repositories.MessageRepository
	dealRepo    repositories.DealRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	messageRepo repositories.MessageRepository,
	dealRepo repositories.DealRepository,
) *NotificationService {
	return &NotificationService{
		messageRepo: messageRepo,
		dealRepo:    dealRepo,
	}
}

// DashboardSummary bundles the badge counts for one user
type DashboardSummary struct {
	UnreadMessages int64                          `json:"unread_messages"`
	DealCounts     []repositories.DealStatusCount `json:"deal_counts"`
}

// UnreadCount counts the user's unread messages
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.messageRepo.CountUnread(ctx, userID)
}

// DealCounts returns the user's deal counts per status and role
func (s *NotificationService) DealCounts(ctx context.Context, userID string) ([]repositories.DealStatusCount, error) {
	return s.dealRepo.CountByStatusAndRole(ctx, userID)
}

// Summary computes the full dashboard badge set in one call
func (s *NotificationService) Summary(ctx context.Context, userID string) (*DashboardSummary, error) {
	unread, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := s.dealRepo.CountByStatusAndRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		UnreadMessages: unread,
		DealCounts:     counts,
	}, nil
}
