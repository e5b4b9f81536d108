package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nwachie/skillswap/backend/internal/domain/entities"
	"github.com/nwachie/skillswap/backend/internal/domain/repositories"
)

// StubTxRepositories bundles repository mocks behind the TxRepositories
// interface so unit-of-work callbacks can run against them
type StubTxRepositories struct {
	DealRepo    *MockDealRepository
	SkillRepo   *MockSkillRepository
	MessageRepo *MockMessageRepository
	ReviewRepo  *MockReviewRepository
	ProfileRepo *MockProfileRepository
	LedgerRepo  *MockLedgerRepository
}

// NewStubTxRepositories creates the full mock bundle
func NewStubTxRepositories(t interface {
	mock.TestingT
	Cleanup(func())
}) *StubTxRepositories {
	return &StubTxRepositories{
		DealRepo:    NewMockDealRepository(t),
		SkillRepo:   NewMockSkillRepository(t),
		MessageRepo: NewMockMessageRepository(t),
		ReviewRepo:  NewMockReviewRepository(t),
		ProfileRepo: NewMockProfileRepository(t),
		LedgerRepo:  NewMockLedgerRepository(t),
	}
}

func (s *StubTxRepositories) Deals() repositories.DealRepository       { return s.DealRepo }
func (s *StubTxRepositories) Skills() repositories.SkillRepository     { return s.SkillRepo }
func (s *StubTxRepositories) Messages() repositories.MessageRepository { return s.MessageRepo }
func (s *StubTxRepositories) Reviews() repositories.ReviewRepository   { return s.ReviewRepo }
func (s *StubTxRepositories) Profiles() repositories.ProfileRepository { return s.ProfileRepo }
func (s *StubTxRepositories) Ledger() repositories.LedgerRepository    { return s.LedgerRepo }

// StubUnitOfWork runs the callback directly against the stub repositories.
// The callback's error propagates exactly as the real implementation's
// rollback path would surface it.
type StubUnitOfWork struct {
	Repos *StubTxRepositories

	// BeginErr, when set, is returned before the callback runs, imitating
	// a transaction that could not be opened.
	BeginErr error
}

// NewStubUnitOfWork creates a unit of work over the given stub repositories
func NewStubUnitOfWork(repos *StubTxRepositories) *StubUnitOfWork {
	return &StubUnitOfWork{Repos: repos}
}

// Execute implements repositories.UnitOfWork
func (u *StubUnitOfWork) Execute(ctx context.Context, fn func(tx repositories.TxRepositories) error) error {
	if u.BeginErr != nil {
		return u.BeginErr
	}
	return fn(u.Repos)
}

// MockEventBus is a mock implementation of providers.EventBus
type MockEventBus struct {
	mock.Mock
}

func NewMockEventBus(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventBus {
	m := &MockEventBus{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.DealEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.DealEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.DealEvent), args.Error(1)
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *MockEventBus) Close() error {
	args := m.Called()
	return args.Error(0)
}
