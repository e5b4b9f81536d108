// Package mocks provides testify mocks for the domain repository and
// provider interfaces, used by the service unit tests.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
)

// MockDealRepository is a mock implementation of repositories.DealRepository
type MockDealRepository struct {
	mock.Mock
}

func NewMockDealRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDealRepository {
	m := &MockDealRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDealRepository) Create(ctx context.Context, deal *entities.SkillDeal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) GetByID(ctx context.Context, id string) (*entities.SkillDeal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SkillDeal), args.Error(1)
}

func (m *MockDealRepository) PendingExists(ctx context.Context, skillID, providerID, requesterID string) (bool, error) {
	args := m.Called(ctx, skillID, providerID, requesterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDealRepository) UpdateStatus(ctx context.Context, id string, from, to entities.DealStatus, startDate, endDate *time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, startDate, endDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockDealRepository) ListForUser(ctx context.Context, userID string, filter repositories.DealFilter) ([]*entities.SkillDeal, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SkillDeal), args.Error(1)
}

func (m *MockDealRepository) HasCompletedDeal(ctx context.Context, skillID, requesterID string) (bool, error) {
	args := m.Called(ctx, skillID, requesterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDealRepository) CountByStatusAndRole(ctx context.Context, userID string) ([]repositories.DealStatusCount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.DealStatusCount), args.Error(1)
}

// MockSkillRepository is a mock implementation of repositories.SkillRepository
type MockSkillRepository struct {
	mock.Mock
}

func NewMockSkillRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSkillRepository {
	m := &MockSkillRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSkillRepository) Create(ctx context.Context, skill *entities.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *MockSkillRepository) GetByID(ctx context.Context, id string) (*entities.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Skill), args.Error(1)
}

func (m *MockSkillRepository) UpdateRating(ctx context.Context, id string, rating float64) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func (m *MockSkillRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Skill, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Skill), args.Error(1)
}

// MockMessageRepository is a mock implementation of repositories.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func NewMockMessageRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageRepository {
	m := &MockMessageRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMessageRepository) Create(ctx context.Context, message *entities.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id string) (*entities.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByDeal(ctx context.Context, dealID string) ([]*entities.Message, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) ListByReceiver(ctx context.Context, receiverID string, limit, offset int) ([]*entities.Message, error) {
	args := m.Called(ctx, receiverID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func NewMockReviewRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockReviewRepository {
	m := &MockReviewRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Exists(ctx context.Context, skillID, reviewerID string) (bool, error) {
	args := m.Called(ctx, skillID, reviewerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) ListBySkill(ctx context.Context, skillID string) ([]*entities.Review, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

// MockProfileRepository is a mock implementation of repositories.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func NewMockProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entities.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*entities.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserProfile), args.Error(1)
}

// MockLedgerRepository is a mock implementation of repositories.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func NewMockLedgerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLedgerRepository {
	m := &MockLedgerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLedgerRepository) Balance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) LockBalances(ctx context.Context, userA, userB string) error {
	args := m.Called(ctx, userA, userB)
	return args.Error(0)
}

func (m *MockLedgerRepository) AdjustBalance(ctx context.Context, userID string, delta int64) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

func (m *MockLedgerRepository) RecordTransfer(ctx context.Context, transfer *entities.CreditTransfer) error {
	args := m.Called(ctx, transfer)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListTransfersForUser(ctx context.Context, userID string, limit int) ([]*entities.CreditTransfer, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CreditTransfer), args.Error(1)
}
