package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/srochno-market/internal/domain"
	domainmocks "github.com/fsdevblog/srochno-market/internal/domain/mocks"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
	uowmocks "github.com/fsdevblog/srochno-market/pkg/uow/mocks"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockUOW       *uowmocks.MockUOW
	mockTX        *uowmocks.MockTX
	mockUserRepo  *domainmocks.MockUserRepository
	mockBlRepo    *domainmocks.MockBalanceTransactionRepository
	ledgerService *LedgerService
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockUserRepo = domainmocks.NewMockUserRepository(s.mockCtrl)
	s.mockBlRepo = domainmocks.NewMockBalanceTransactionRepository(s.mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.BalanceTransactionRepoName)).
		Return(s.mockBlRepo, nil).AnyTimes()

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.BalanceTransactionRepoName)).
		Return(s.mockBlRepo, nil).AnyTimes()

	ledgerService, servErr := NewLedgerService(s.mockUOW)
	s.Require().NoError(servErr)
	s.ledgerService = ledgerService
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *LedgerServiceTestSuite) TestCreditTx() {
	var userID int64 = 100

	s.mockUserRepo.EXPECT().LockByID(gomock.Any(), userID).Return(&domain.User{ID: userID, Balance: 5}, nil)
	s.mockUserRepo.EXPECT().AddBalance(gomock.Any(), userID, int64(10)).Return(int64(15), nil)

	s.mockBlRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateBalanceTransaction) (*domain.BalanceTransaction, error) {
			s.Equal(userID, args.UserID)
			s.Equal(domain.TransactionRecharge, args.Type)
			s.Equal(int64(10), args.Amount)
			s.Equal(int64(15), args.BalanceAfter)
			return &domain.BalanceTransaction{ID: 1, UserID: userID, Amount: 10, BalanceAfter: 15}, nil
		})

	transaction, err := s.ledgerService.CreditTx(s.T().Context(), s.mockTX, CreditArgs{
		UserID: userID,
		Amount: 10,
		Type:   domain.TransactionRecharge,
	})

	s.Require().NoError(err)
	s.Equal(int64(15), transaction.BalanceAfter)
}

func (s *LedgerServiceTestSuite) TestCreditTxNonPositiveAmount() {
	_, err := s.ledgerService.CreditTx(s.T().Context(), s.mockTX, CreditArgs{
		UserID: 100,
		Amount: 0,
	})

	s.Require().ErrorIs(err, domain.ErrInvalid)
}

func (s *LedgerServiceTestSuite) TestDebitTx() {
	var userID int64 = 100

	s.mockUserRepo.EXPECT().LockByID(gomock.Any(), userID).Return(&domain.User{ID: userID, Balance: 10}, nil)
	s.mockUserRepo.EXPECT().AddBalance(gomock.Any(), userID, int64(-2)).Return(int64(8), nil)

	s.mockBlRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateBalanceTransaction) (*domain.BalanceTransaction, error) {
			// В журнале списание хранится со знаком минус.
			s.Equal(int64(-2), args.Amount)
			s.Equal(int64(8), args.BalanceAfter)
			s.Equal(domain.TransactionOrderTake, args.Type)
			return &domain.BalanceTransaction{ID: 1, UserID: userID, Amount: -2, BalanceAfter: 8}, nil
		})

	newBalance, err := s.ledgerService.DebitTx(s.T().Context(), s.mockTX, DebitArgs{
		UserID: userID,
		Amount: 2,
		Type:   domain.TransactionOrderTake,
	})

	s.Require().NoError(err)
	s.Equal(int64(8), newBalance)
}

func (s *LedgerServiceTestSuite) TestDebitTxInsufficientFunds() {
	var userID int64 = 100

	s.mockUserRepo.EXPECT().LockByID(gomock.Any(), userID).Return(&domain.User{ID: userID, Balance: 1}, nil)

	// Баланса не хватает: ни AddBalance, ни записи журнала быть не должно.
	_, err := s.ledgerService.DebitTx(s.T().Context(), s.mockTX, DebitArgs{
		UserID: userID,
		Amount: 2,
		Type:   domain.TransactionOrderTake,
	})

	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)
}

func (s *LedgerServiceTestSuite) TestDebitTxExactBalance() {
	var userID int64 = 100

	s.mockUserRepo.EXPECT().LockByID(gomock.Any(), userID).Return(&domain.User{ID: userID, Balance: 2}, nil)
	s.mockUserRepo.EXPECT().AddBalance(gomock.Any(), userID, int64(-2)).Return(int64(0), nil)
	s.mockBlRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(&domain.BalanceTransaction{ID: 1, UserID: userID, Amount: -2, BalanceAfter: 0}, nil)

	// Списание ровно до нуля разрешено.
	newBalance, err := s.ledgerService.DebitTx(s.T().Context(), s.mockTX, DebitArgs{
		UserID: userID,
		Amount: 2,
		Type:   domain.TransactionOrderTake,
	})

	s.Require().NoError(err)
	s.Equal(int64(0), newBalance)
}

func (s *LedgerServiceTestSuite) TestRecharge() {
	var userID int64 = 100

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		})

	s.mockUserRepo.EXPECT().LockByID(gomock.Any(), userID).Return(&domain.User{ID: userID, Balance: 0}, nil)
	s.mockUserRepo.EXPECT().AddBalance(gomock.Any(), userID, int64(50)).Return(int64(50), nil)
	s.mockBlRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateBalanceTransaction) (*domain.BalanceTransaction, error) {
			s.Equal(domain.TransactionRecharge, args.Type)
			s.Equal("manual", args.PaymentMethod)
			return &domain.BalanceTransaction{ID: 1, UserID: userID, Amount: 50, BalanceAfter: 50}, nil
		})

	transaction, err := s.ledgerService.Recharge(s.T().Context(), userID, 50, "manual")

	s.Require().NoError(err)
	s.Equal(int64(50), transaction.BalanceAfter)
}

func (s *LedgerServiceTestSuite) TestGetBalance() {
	var userID int64 = 100

	s.mockUserRepo.EXPECT().GetByID(gomock.Any(), userID).Return(&domain.User{ID: userID, Balance: 7}, nil)

	balance, err := s.ledgerService.GetBalance(s.T().Context(), userID)

	s.Require().NoError(err)
	s.Equal(int64(7), balance)
}

func (s *LedgerServiceTestSuite) TestGetBalanceUnknownUser() {
	var userID int64 = 100

	s.mockUserRepo.EXPECT().GetByID(gomock.Any(), userID).Return(nil, domain.ErrRecordNotFound)

	_, err := s.ledgerService.GetBalance(s.T().Context(), userID)

	s.Require().ErrorIs(err, domain.ErrNotFound)
}
