package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/srochno-market/internal/config"
	"github.com/fsdevblog/srochno-market/internal/domain"
	domainmocks "github.com/fsdevblog/srochno-market/internal/domain/mocks"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/internal/service/mocks"
	"github.com/fsdevblog/srochno-market/pkg/uow"
	uowmocks "github.com/fsdevblog/srochno-market/pkg/uow/mocks"
)

type SweepServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockTX        *uowmocks.MockTX
	mockOrderRepo *domainmocks.MockOrderRepository
	mockTakeRepo  *domainmocks.MockTakeRepository
	mockUserRepo  *domainmocks.MockUserRepository
	mockLedger    *mocks.MockLedger
	sweepService  *SweepService

	now   time.Time
	rules config.Rules
}

func TestSweepServiceSuite(t *testing.T) {
	suite.Run(t, new(SweepServiceTestSuite))
}

func (s *SweepServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockOrderRepo = domainmocks.NewMockOrderRepository(s.mockCtrl)
	s.mockTakeRepo = domainmocks.NewMockTakeRepository(s.mockCtrl)
	s.mockUserRepo = domainmocks.NewMockUserRepository(s.mockCtrl)
	s.mockLedger = mocks.NewMockLedger(s.mockCtrl)

	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.rules = config.Rules{
		OrderLifetimeMinutes:   60,
		NoResponseCloseMinutes: 15,
		MaxExecutorsPerOrder:   3,
		OrderTakeCost:          2,
	}

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.OrderRepoName)).
		Return(s.mockOrderRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.TakeRepoName)).
		Return(s.mockTakeRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sweepService, servErr := NewSweepService(s.mockUOW, s.mockLedger, s.rules, logger)
	s.Require().NoError(servErr)
	s.sweepService = sweepService.WithNow(func() time.Time { return s.now })
}

func (s *SweepServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *SweepServiceTestSuite) order(id string, clientID int64) *domain.Order {
	return &domain.Order{
		ID:               id,
		CreatedAt:        s.now.Add(-10 * time.Minute),
		ClientID:         clientID,
		Status:           domain.OrderStatusActive,
		ExpiresInMinutes: s.rules.OrderLifetimeMinutes,
	}
}

func (s *SweepServiceTestSuite) TestSweepExpiredOrder() {
	order := s.order("expired-1", 100)
	order.CreatedAt = s.now.Add(-2 * time.Hour)
	takes := []domain.ExecutorTake{
		{ID: 1, OrderID: order.ID, ExecutorID: 201, TakenAt: s.now.Add(-100 * time.Minute)},
	}

	s.mockOrderRepo.EXPECT().GetActiveIDs(gomock.Any()).Return([]string{order.ID}, nil)
	s.mockOrderRepo.EXPECT().LockByID(gomock.Any(), order.ID).Return(order, nil)

	s.mockOrderRepo.EXPECT().SetStatus(gomock.Any(), order.ID, domain.OrderStatusExpired).Return(nil)
	s.mockUserRepo.EXPECT().
		AdjustCounters(gomock.Any(), int64(100), repoargs.AdjustCounters{ActiveDelta: -1}).
		Return(nil)
	s.mockTakeRepo.EXPECT().GetByOrderID(gomock.Any(), order.ID).Return(takes, nil)
	s.mockUserRepo.EXPECT().
		AdjustCounters(gomock.Any(), int64(201), repoargs.AdjustCounters{ActiveDelta: -1}).
		Return(nil)

	// Просрочка не возвращает деньги: мок леджера без EXPECT упадет на любом вызове.
	transitioned, err := s.sweepService.SweepOnce(s.T().Context())

	s.Require().NoError(err)
	s.Equal(1, transitioned)
}

func (s *SweepServiceTestSuite) TestSweepNoResponseRefund() {
	order := s.order("silent-1", 100)
	takes := []domain.ExecutorTake{
		{ID: 1, OrderID: order.ID, ExecutorID: 201, TakenAt: s.now.Add(-20 * time.Minute)},
		{ID: 2, OrderID: order.ID, ExecutorID: 202, TakenAt: s.now.Add(-5 * time.Minute)},
	}

	s.mockOrderRepo.EXPECT().GetActiveIDs(gomock.Any()).Return([]string{order.ID}, nil)
	s.mockOrderRepo.EXPECT().LockByID(gomock.Any(), order.ID).Return(order, nil)
	s.mockTakeRepo.EXPECT().GetByOrderID(gomock.Any(), order.ID).Return(takes, nil)

	s.mockOrderRepo.EXPECT().SetStatus(gomock.Any(), order.ID, domain.OrderStatusClosedNoResponse).Return(nil)
	s.mockUserRepo.EXPECT().
		AdjustCounters(gomock.Any(), int64(100), repoargs.AdjustCounters{ActiveDelta: -1}).
		Return(nil)

	// Возврат получает каждый взявший, не только самый ранний.
	for _, take := range takes {
		s.mockUserRepo.EXPECT().
			AdjustCounters(gomock.Any(), take.ExecutorID, repoargs.AdjustCounters{ActiveDelta: -1}).
			Return(nil)
		executorID := take.ExecutorID
		s.mockLedger.EXPECT().
			CreditTx(gomock.Any(), s.mockTX, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uow.TX, args CreditArgs) (*domain.BalanceTransaction, error) {
				s.Equal(executorID, args.UserID)
				s.Equal(s.rules.OrderTakeCost, args.Amount)
				s.Equal(domain.TransactionRefund, args.Type)
				s.Equal(order.ID, args.OrderID)
				return &domain.BalanceTransaction{ID: 1, UserID: executorID, Amount: args.Amount}, nil
			})
	}

	transitioned, err := s.sweepService.SweepOnce(s.T().Context())

	s.Require().NoError(err)
	s.Equal(1, transitioned)
}

func (s *SweepServiceTestSuite) TestSweepRespondedOrderUntouched() {
	order := s.order("responded-1", 100)
	respondedAt := s.now.Add(-30 * time.Minute)
	order.CustomerRespondedAt = &respondedAt

	s.mockOrderRepo.EXPECT().GetActiveIDs(gomock.Any()).Return([]string{order.ID}, nil)
	s.mockOrderRepo.EXPECT().LockByID(gomock.Any(), order.ID).Return(order, nil)

	transitioned, err := s.sweepService.SweepOnce(s.T().Context())

	s.Require().NoError(err)
	s.Equal(0, transitioned)
}

func (s *SweepServiceTestSuite) TestSweepFreshTakeUntouched() {
	order := s.order("fresh-1", 100)
	takes := []domain.ExecutorTake{
		{ID: 1, OrderID: order.ID, ExecutorID: 201, TakenAt: s.now.Add(-5 * time.Minute)},
	}

	s.mockOrderRepo.EXPECT().GetActiveIDs(gomock.Any()).Return([]string{order.ID}, nil)
	s.mockOrderRepo.EXPECT().LockByID(gomock.Any(), order.ID).Return(order, nil)
	s.mockTakeRepo.EXPECT().GetByOrderID(gomock.Any(), order.ID).Return(takes, nil)

	// Окно ответа еще не истекло.
	transitioned, err := s.sweepService.SweepOnce(s.T().Context())

	s.Require().NoError(err)
	s.Equal(0, transitioned)
}

func (s *SweepServiceTestSuite) TestSweepSkipsConcurrentlyTransitioned() {
	order := s.order("raced-1", 100)
	order.Status = domain.OrderStatusCompleted

	s.mockOrderRepo.EXPECT().GetActiveIDs(gomock.Any()).Return([]string{order.ID}, nil)
	s.mockOrderRepo.EXPECT().LockByID(gomock.Any(), order.ID).Return(order, nil)

	// Снимок активных id устарел: заказ уже перевели, трогать нечего.
	transitioned, err := s.sweepService.SweepOnce(s.T().Context())

	s.Require().NoError(err)
	s.Equal(0, transitioned)
}

func (s *SweepServiceTestSuite) TestSweepErrorDoesNotStopPass() {
	broken := s.order("broken-1", 100)
	expired := s.order("expired-2", 101)
	expired.CreatedAt = s.now.Add(-2 * time.Hour)

	s.mockOrderRepo.EXPECT().GetActiveIDs(gomock.Any()).Return([]string{broken.ID, expired.ID}, nil)

	s.mockOrderRepo.EXPECT().LockByID(gomock.Any(), broken.ID).Return(nil, errors.New("boom"))

	s.mockOrderRepo.EXPECT().LockByID(gomock.Any(), expired.ID).Return(expired, nil)
	s.mockOrderRepo.EXPECT().SetStatus(gomock.Any(), expired.ID, domain.OrderStatusExpired).Return(nil)
	s.mockUserRepo.EXPECT().
		AdjustCounters(gomock.Any(), int64(101), repoargs.AdjustCounters{ActiveDelta: -1}).
		Return(nil)
	s.mockTakeRepo.EXPECT().GetByOrderID(gomock.Any(), expired.ID).Return(nil, nil)

	// Сбой на одном заказе не прерывает проход.
	transitioned, err := s.sweepService.SweepOnce(s.T().Context())

	s.Require().NoError(err)
	s.Equal(1, transitioned)
}
