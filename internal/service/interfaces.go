package service

import (
	"context"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// Ledger примитивы изменения баланса, работающие внутри чужой транзакции.
// Вызывающий отвечает за атомарность: и баланс, и запись журнала фиксируются
// вместе с его собственными изменениями.
type Ledger interface {
	CreditTx(ctx context.Context, tx uow.TX, args CreditArgs) (*domain.BalanceTransaction, error)
	DebitTx(ctx context.Context, tx uow.TX, args DebitArgs) (int64, error)
}

// GatewayInvoice счет, созданный у внешнего платежного провайдера.
type GatewayInvoice struct {
	InvoiceID         int64
	PayURL            string
	MiniAppInvoiceURL string
}

// GatewayClient клиент внешнего платежного провайдера.
type GatewayClient interface {
	Configured() bool
	CreateInvoice(ctx context.Context, amount int64, description string, expiresInSeconds int) (*GatewayInvoice, error)
}

// MessageSender канал доставки уведомлений (telegram).
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Notifier рассылает уведомления о новом заказе. Best-effort: ошибки доставки
// не возвращаются и не должны влиять на создание заказа.
type Notifier interface {
	DispatchNewOrder(ctx context.Context, order domain.Order)
}
