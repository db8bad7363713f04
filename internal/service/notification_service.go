package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

const sendTimeout = 10 * time.Second

// NotificationService рассылает подписчикам уведомления о новых заказах.
// Fire-and-forget: любая ошибка подбора или доставки логируется и глотается,
// создание заказа от рассылки не зависит.
type NotificationService struct {
	userRepo domain.UserRepository
	sender   MessageSender
	log      *logrus.Entry
	now      func() time.Time
}

func NewNotificationService(u uow.UOW, sender MessageSender, logger *logrus.Logger) (*NotificationService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[domain.UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &NotificationService{
		userRepo: userRepo,
		sender:   sender,
		log:      logger.WithField("component", "notification_service"),
		now:      time.Now,
	}, nil
}

// WithNow подменяет источник времени. Для тестов.
func (s *NotificationService) WithNow(now func() time.Time) *NotificationService {
	s.now = now
	return s
}

// DispatchNewOrder уведомляет юзеров, подписанных на категорию и город заказа.
// Получатели в личном кулдауне пропускаются, автор заказа исключен всегда.
func (s *NotificationService) DispatchNewOrder(ctx context.Context, order domain.Order) {
	if s.sender == nil {
		return
	}

	subscribers, findErr := s.userRepo.FindSubscribed(ctx, order.Category, order.City, order.ClientID)
	if findErr != nil {
		s.log.WithError(findErr).WithField("order_id", order.ID).Error("matching subscribers")
		return
	}

	text := notificationText(order)
	now := s.now()

	for _, subscriber := range subscribers {
		if !s.cooldownElapsed(&subscriber, now) {
			continue
		}
		s.notifyOne(ctx, subscriber.ID, order.ID, text, now)
	}
}

func (s *NotificationService) notifyOne(ctx context.Context, userID int64, orderID, text string, now time.Time) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if sendErr := s.sender.SendMessage(sendCtx, userID, text); sendErr != nil {
		s.log.WithError(sendErr).WithFields(logrus.Fields{
			"order_id": orderID,
			"user_id":  userID,
		}).Warn("sending notification")
		return
	}
	if markErr := s.userRepo.SetLastNotifiedAt(ctx, userID, now); markErr != nil {
		s.log.WithError(markErr).WithField("user_id", userID).Error("updating last notified at")
	}
}

func (s *NotificationService) cooldownElapsed(user *domain.User, now time.Time) bool {
	if user.LastNotifiedAt == nil {
		return true
	}
	cooldown := time.Duration(user.NotificationFrequencyMinutes) * time.Minute
	return !now.Before(user.LastNotifiedAt.Add(cooldown))
}

func notificationText(order domain.Order) string {
	return fmt.Sprintf("Новый заказ: %s, %s\n%s", order.Category, order.City, order.Description)
}
