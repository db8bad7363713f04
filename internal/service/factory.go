package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/srochno-market/internal/config"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

type AppServices struct {
	UserService         *UserService
	OrderService        *OrderService
	LedgerService       *LedgerService
	PaymentService      *PaymentService
	SweepService        *SweepService
	NotificationService *NotificationService
}

func Factory(
	unitOfWork uow.UOW,
	gateway GatewayClient,
	sender MessageSender,
	conf *config.Config,
	logger *logrus.Logger,
) (*AppServices, error) {
	rules := conf.Rules()

	userService, userServiceErr := NewUserService(unitOfWork, conf.TelegramBotToken, conf.JWTUserSecret)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	ledgerService, ledgerServiceErr := NewLedgerService(unitOfWork)
	if ledgerServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerServiceErr.Error())
	}

	notificationService, notificationServiceErr := NewNotificationService(unitOfWork, sender, logger)
	if notificationServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", notificationServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(unitOfWork, ledgerService, notificationService, rules)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	paymentService, paymentServiceErr := NewPaymentService(
		unitOfWork, gateway, ledgerService, conf.CryptoPayToken, logger)
	if paymentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", paymentServiceErr.Error())
	}

	sweepService, sweepServiceErr := NewSweepService(unitOfWork, ledgerService, rules, logger)
	if sweepServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", sweepServiceErr.Error())
	}

	return &AppServices{
		UserService:         userService,
		OrderService:        orderService,
		LedgerService:       ledgerService,
		PaymentService:      paymentService,
		SweepService:        sweepService,
		NotificationService: notificationService,
	}, nil
}
