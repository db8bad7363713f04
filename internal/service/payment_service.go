package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

// webhookKeyDomain фиксированная строка для выведения ключа подписи вебхука
// из токена провайдера.
const webhookKeyDomain = "WebhookData"

const (
	invoiceLifetimeSeconds = 3600
	paymentMethodCryptoPay = "crypto_pay"
)

// PaymentService адаптер платежного провайдера: выставление счетов,
// проверка подписи вебхука и идемпотентное зачисление оплаты в леджер.
type PaymentService struct {
	uow         uow.UOW
	invoiceRepo domain.PaymentInvoiceRepository
	gateway     GatewayClient
	ledger      Ledger
	token       string
	log         *logrus.Entry
	now         func() time.Time
}

func NewPaymentService(
	u uow.UOW,
	gateway GatewayClient,
	ledger Ledger,
	token string,
	logger *logrus.Logger,
) (*PaymentService, error) {
	invoiceRepo, invoiceRepoErr := uow.GetRepositoryAs[domain.PaymentInvoiceRepository](
		u, uow.RepositoryName(repoargs.PaymentInvoiceRepoName))
	if invoiceRepoErr != nil {
		return nil, invoiceRepoErr
	}
	return &PaymentService{
		uow:         u,
		invoiceRepo: invoiceRepo,
		gateway:     gateway,
		ledger:      ledger,
		token:       token,
		log:         logger.WithField("component", "payment_service"),
		now:         time.Now,
	}, nil
}

// WithNow подменяет источник времени. Для тестов.
func (s *PaymentService) WithNow(now func() time.Time) *PaymentService {
	s.now = now
	return s
}

// CreateInvoice выставляет счет у провайдера и сохраняет его в статусе pending.
// При несконфигурированном или недоступном провайдере - domain.ErrGatewayUnavailable.
func (s *PaymentService) CreateInvoice(ctx context.Context, userID int64, amount int64) (*domain.PaymentInvoice, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invoice amount must be positive: %w", domain.ErrInvalid)
	}
	if s.gateway == nil || !s.gateway.Configured() {
		return nil, fmt.Errorf("payment provider is not configured: %w", domain.ErrGatewayUnavailable)
	}

	gatewayInvoice, callErr := s.gateway.CreateInvoice(
		ctx, amount, fmt.Sprintf("Balance recharge for user %d", userID), invoiceLifetimeSeconds)
	if callErr != nil {
		return nil, fmt.Errorf("%s: %w", callErr.Error(), domain.ErrGatewayUnavailable)
	}

	invoice, createErr := s.invoiceRepo.Create(ctx, repoargs.CreatePaymentInvoice{
		UserID:            userID,
		ExternalInvoiceID: gatewayInvoice.InvoiceID,
		Amount:            amount,
		PayURL:            gatewayInvoice.PayURL,
		MiniAppInvoiceURL: gatewayInvoice.MiniAppInvoiceURL,
	})
	if createErr != nil {
		return nil, convertRepoErr(createErr)
	}
	return invoice, nil
}

// VerifySignature проверяет HMAC подпись сырого тела вебхука. Ключ подписи
// выводится через HMAC от токена провайдера с фиксированной доменной строкой.
// На любом некорректном входе возвращает false, никогда не паникует.
func (s *PaymentService) VerifySignature(rawBody []byte, signature string) bool {
	if s.token == "" || signature == "" {
		return false
	}

	keyMAC := hmac.New(sha256.New, []byte(webhookKeyDomain))
	keyMAC.Write([]byte(s.token))
	secretKey := keyMAC.Sum(nil)

	mac := hmac.New(sha256.New, secretKey)
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// ProcessPaidInvoice идемпотентно зачисляет оплату по внешнему id счета.
// Неизвестный счет логируется и не считается ошибкой, повторная доставка
// по уже оплаченному счету - no-op: провайдер не должен видеть ошибку,
// провоцирующую ретраи.
func (s *PaymentService) ProcessPaidInvoice(ctx context.Context, externalInvoiceID int64) error {
	return s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		invoiceRepo, repoErr := uow.GetAs[domain.PaymentInvoiceRepository](
			tx, uow.RepositoryName(repoargs.PaymentInvoiceRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		invoice, lockErr := invoiceRepo.LockByExternalID(c, externalInvoiceID)
		if lockErr != nil {
			if errors.Is(lockErr, domain.ErrRecordNotFound) {
				s.log.WithField("external_invoice_id", externalInvoiceID).Warn("webhook for unknown invoice, skipping")
				return nil
			}
			return lockErr //nolint:wrapcheck
		}
		if invoice.Status != domain.InvoiceStatusPending {
			s.log.WithFields(logrus.Fields{
				"external_invoice_id": externalInvoiceID,
				"status":              invoice.Status,
			}).Info("invoice already processed, skipping")
			return nil
		}

		transaction, creditErr := s.ledger.CreditTx(c, tx, CreditArgs{
			UserID:                invoice.UserID,
			Amount:                invoice.Amount,
			Type:                  domain.TransactionRecharge,
			PaymentMethod:         paymentMethodCryptoPay,
			ExternalTransactionID: fmt.Sprintf("%d", externalInvoiceID),
			Description:           fmt.Sprintf("Balance recharge via %s", paymentMethodCryptoPay),
		})
		if creditErr != nil {
			return creditErr
		}

		return convertRepoErr(invoiceRepo.MarkPaid(c, invoice.ID, transaction.ID, s.now()))
	})
}

// InvoiceStatus возвращает счет юзера по внутреннему id.
// Чужой счет неотличим от несуществующего.
func (s *PaymentService) InvoiceStatus(ctx context.Context, invoiceID, userID int64) (*domain.PaymentInvoice, error) {
	invoice, getErr := s.invoiceRepo.GetByIDAndUser(ctx, invoiceID, userID)
	if getErr != nil {
		return nil, convertRepoErr(getErr)
	}
	return invoice, nil
}
