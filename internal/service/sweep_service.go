package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/srochno-market/internal/config"
	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

// SweepService одна итерация фоновой уборки: просроченные активные заказы
// переводятся в expired, заказы с откликами без ответа клиента закрываются
// с возвратом денег каждому взявшему исполнителю.
type SweepService struct {
	uow       uow.UOW
	orderRepo domain.OrderRepository
	ledger    Ledger
	rules     config.Rules
	log       *logrus.Entry
	now       func() time.Time
}

func NewSweepService(u uow.UOW, ledger Ledger, rules config.Rules, logger *logrus.Logger) (*SweepService, error) {
	orderRepo, orderRepoErr := uow.GetRepositoryAs[domain.OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if orderRepoErr != nil {
		return nil, orderRepoErr
	}
	return &SweepService{
		uow:       u,
		orderRepo: orderRepo,
		ledger:    ledger,
		rules:     rules,
		log:       logger.WithField("component", "sweep_service"),
		now:       time.Now,
	}, nil
}

// WithNow подменяет источник времени. Для тестов.
func (s *SweepService) WithNow(now func() time.Time) *SweepService {
	s.now = now
	return s
}

// SweepOnce один проход по всем активным заказам. Каждый заказ обрабатывается
// в собственной транзакции: сбой на одном не прерывает проход, ошибка только
// логируется. Возвращает число фактически переведенных заказов.
func (s *SweepService) SweepOnce(ctx context.Context) (int, error) {
	ids, idsErr := s.orderRepo.GetActiveIDs(ctx)
	if idsErr != nil {
		return 0, fmt.Errorf("listing active orders: %w", idsErr)
	}

	var transitioned int
	for _, orderID := range ids {
		if ctx.Err() != nil {
			return transitioned, ctx.Err() //nolint:wrapcheck
		}
		changed, sweepErr := s.sweepOrder(ctx, orderID)
		if sweepErr != nil {
			s.log.WithError(sweepErr).WithField("order_id", orderID).Error("sweeping order")
			continue
		}
		if changed {
			transitioned++
		}
	}
	return transitioned, nil
}

// sweepOrder перечитывает заказ под блокировкой и применяет подходящий переход.
// Снимок активных id к этому моменту мог устареть, поэтому статус проверяется заново.
func (s *SweepService) sweepOrder(ctx context.Context, orderID string) (bool, error) {
	var changed bool
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		orderRepo, orderRepoErr := uow.GetAs[domain.OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		takeRepo, takeRepoErr := uow.GetAs[domain.TakeRepository](tx, uow.RepositoryName(repoargs.TakeRepoName))
		if takeRepoErr != nil {
			return takeRepoErr //nolint:wrapcheck
		}
		userRepo, userRepoErr := uow.GetAs[domain.UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		order, lockErr := orderRepo.LockByID(c, orderID)
		if lockErr != nil {
			return convertRepoErr(lockErr)
		}
		if order.Status != domain.OrderStatusActive {
			// Конкурентный запрос успел перевести заказ первым.
			return nil
		}

		now := s.now()

		if order.IsExpired(now) {
			if expireErr := expireLockedOrder(c, orderRepo, takeRepo, userRepo, order); expireErr != nil {
				return expireErr
			}
			s.log.WithField("order_id", orderID).Info("order expired")
			changed = true
			return nil
		}

		if order.CustomerRespondedAt != nil {
			return nil
		}

		takes, takesErr := takeRepo.GetByOrderID(c, orderID)
		if takesErr != nil {
			return takesErr //nolint:wrapcheck
		}
		if len(takes) == 0 {
			return nil
		}

		// takes отсортированы по taken_at, первый элемент - самый ранний отклик.
		deadline := takes[0].TakenAt.Add(time.Duration(s.rules.NoResponseCloseMinutes) * time.Minute)
		if now.Before(deadline) {
			return nil
		}

		if closeErr := s.closeNoResponse(c, tx, orderRepo, userRepo, order, takes); closeErr != nil {
			return closeErr
		}
		s.log.WithFields(logrus.Fields{
			"order_id": orderID,
			"refunds":  len(takes),
		}).Info("order closed without client response")
		changed = true
		return nil
	})
	return changed, txErr
}

// closeNoResponse переводит заказ в closed_no_response и возвращает каждому
// взявшему исполнителю стоимость take. Единственный автопереход, отменяющий
// платеж: клиент не ответил в отведенное окно не по вине исполнителя.
func (s *SweepService) closeNoResponse(
	ctx context.Context,
	tx uow.TX,
	orderRepo domain.OrderRepository,
	userRepo domain.UserRepository,
	order *domain.Order,
	takes []domain.ExecutorTake,
) error {
	if statusErr := orderRepo.SetStatus(ctx, order.ID, domain.OrderStatusClosedNoResponse); statusErr != nil {
		return convertRepoErr(statusErr)
	}
	if counterErr := userRepo.AdjustCounters(ctx, order.ClientID, repoargs.AdjustCounters{ActiveDelta: -1}); counterErr != nil {
		return counterErr
	}

	for _, take := range takes {
		if counterErr := userRepo.AdjustCounters(ctx, take.ExecutorID, repoargs.AdjustCounters{ActiveDelta: -1}); counterErr != nil {
			return counterErr
		}
		if _, creditErr := s.ledger.CreditTx(ctx, tx, CreditArgs{
			UserID:      take.ExecutorID,
			Amount:      s.rules.OrderTakeCost,
			Type:        domain.TransactionRefund,
			OrderID:     order.ID,
			Description: fmt.Sprintf("Refund for order %s closed without client response", order.ID),
		}); creditErr != nil {
			return creditErr
		}
	}
	return nil
}
