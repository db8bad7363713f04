package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

// LedgerService единственная точка изменения балансов. Каждая мутация делается
// под блокировкой FOR UPDATE строки юзера и обязательно парится с записью
// в append-only журнале balance_transactions.
type LedgerService struct {
	uow      uow.UOW
	userRepo domain.UserRepository
	blRepo   domain.BalanceTransactionRepository
}

func NewLedgerService(u uow.UOW) (*LedgerService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[domain.UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	blRepo, blRepoErr := uow.GetRepositoryAs[domain.BalanceTransactionRepository](
		u, uow.RepositoryName(repoargs.BalanceTransactionRepoName))
	if blRepoErr != nil {
		return nil, blRepoErr
	}
	return &LedgerService{
		uow:      u,
		userRepo: userRepo,
		blRepo:   blRepo,
	}, nil
}

type CreditArgs struct {
	UserID                int64
	Amount                int64
	Type                  domain.TransactionType
	OrderID               string
	PaymentMethod         string
	ExternalTransactionID string
	Description           string
}

type DebitArgs struct {
	UserID      int64
	Amount      int64
	Type        domain.TransactionType
	OrderID     string
	Description string
}

// CreditTx начисляет amount на баланс юзера внутри транзакции tx.
// Требует amount > 0, иначе domain.ErrInvalid.
func (s *LedgerService) CreditTx(
	ctx context.Context,
	tx uow.TX,
	args CreditArgs,
) (*domain.BalanceTransaction, error) {
	if args.Amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive: %w", domain.ErrInvalid)
	}

	userRepo, blRepo, repoErr := s.txRepos(tx)
	if repoErr != nil {
		return nil, repoErr
	}

	// Блокировка строки юзера сериализует конкурентные изменения баланса.
	if _, lockErr := userRepo.LockByID(ctx, args.UserID); lockErr != nil {
		return nil, lockErr //nolint:wrapcheck
	}

	newBalance, addErr := userRepo.AddBalance(ctx, args.UserID, args.Amount)
	if addErr != nil {
		return nil, addErr //nolint:wrapcheck
	}

	transaction, createErr := blRepo.Create(ctx, repoargs.CreateBalanceTransaction{
		UserID:                args.UserID,
		Type:                  args.Type,
		Amount:                args.Amount,
		BalanceAfter:          newBalance,
		OrderID:               args.OrderID,
		PaymentMethod:         args.PaymentMethod,
		ExternalTransactionID: args.ExternalTransactionID,
		Description:           args.Description,
	})
	if createErr != nil {
		return nil, createErr //nolint:wrapcheck
	}
	return transaction, nil
}

// DebitTx списывает amount с баланса юзера внутри транзакции tx. Проверка
// достаточности баланса выполняется после взятия блокировки: два конкурентных
// списания не могут оба увидеть устаревший достаточный баланс.
// Возвращает новый баланс или domain.ErrInsufficientFunds.
func (s *LedgerService) DebitTx(ctx context.Context, tx uow.TX, args DebitArgs) (int64, error) {
	if args.Amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive: %w", domain.ErrInvalid)
	}

	userRepo, blRepo, repoErr := s.txRepos(tx)
	if repoErr != nil {
		return 0, repoErr
	}

	user, lockErr := userRepo.LockByID(ctx, args.UserID)
	if lockErr != nil {
		return 0, lockErr //nolint:wrapcheck
	}

	if user.Balance < args.Amount {
		return 0, fmt.Errorf("balance %d is less than %d: %w", user.Balance, args.Amount, domain.ErrInsufficientFunds)
	}

	newBalance, addErr := userRepo.AddBalance(ctx, args.UserID, -args.Amount)
	if addErr != nil {
		return 0, addErr //nolint:wrapcheck
	}

	if _, createErr := blRepo.Create(ctx, repoargs.CreateBalanceTransaction{
		UserID:       args.UserID,
		Type:         args.Type,
		Amount:       -args.Amount,
		BalanceAfter: newBalance,
		OrderID:      args.OrderID,
		Description:  args.Description,
	}); createErr != nil {
		return 0, createErr //nolint:wrapcheck
	}
	return newBalance, nil
}

// Recharge прямое пополнение баланса без платежного провайдера (dev-режим).
func (s *LedgerService) Recharge(
	ctx context.Context,
	userID int64,
	amount int64,
	method string,
) (*domain.BalanceTransaction, error) {
	var transaction *domain.BalanceTransaction

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var creditErr error
		transaction, creditErr = s.CreditTx(c, tx, CreditArgs{
			UserID:        userID,
			Amount:        amount,
			Type:          domain.TransactionRecharge,
			PaymentMethod: method,
			Description:   fmt.Sprintf("Balance recharge via %s", method),
		})
		return creditErr
	})

	if txErr != nil {
		return nil, fmt.Errorf("recharging balance: %w", txErr)
	}
	return transaction, nil
}

// GetBalance возвращает текущий баланс юзера.
func (s *LedgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, convertRepoErr(err)
	}
	return user.Balance, nil
}

// History возвращает журнал операций юзера по убыванию даты.
func (s *LedgerService) History(
	ctx context.Context,
	userID int64,
	limit, offset int,
) ([]domain.BalanceTransaction, error) {
	transactions, err := s.blRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return transactions, nil
}

func (s *LedgerService) txRepos(
	tx uow.TX,
) (domain.UserRepository, domain.BalanceTransactionRepository, error) {
	userRepo, userRepoErr := uow.GetAs[domain.UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, nil, userRepoErr //nolint:wrapcheck
	}
	blRepo, blRepoErr := uow.GetAs[domain.BalanceTransactionRepository](
		tx, uow.RepositoryName(repoargs.BalanceTransactionRepoName))
	if blRepoErr != nil {
		return nil, nil, blRepoErr //nolint:wrapcheck
	}
	return userRepo, blRepo, nil
}
