package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Authenticate(ctx context.Context, initData string) (string, *domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
	UpdatePreferences(ctx context.Context, userID int64, categories, cities []string) (*domain.User, error)
	UpdateNotificationSettings(
		ctx context.Context,
		userID int64,
		args repoargs.UpdateNotificationSettings,
	) (*domain.User, error)
}

type OrderServicer interface {
	Create(ctx context.Context, clientID int64, args service.CreateOrderArgs) (*domain.Order, error)
	Get(ctx context.Context, viewerID int64, orderID string) (*service.OrderView, error)
	List(ctx context.Context, viewerID int64, args service.ListOrdersArgs) ([]domain.Order, int64, error)
	Update(ctx context.Context, clientID int64, orderID string, patch repoargs.OrderPatch) (*domain.Order, error)
	Delete(ctx context.Context, clientID int64, orderID string) error
	Take(ctx context.Context, executorID int64, orderID string) (*service.TakeResult, error)
	Respond(ctx context.Context, clientID int64, orderID string) (*domain.Order, error)
	Close(ctx context.Context, clientID int64, orderID string) error
	Complete(ctx context.Context, clientID int64, orderID string) error
}

type BalanceServicer interface {
	GetBalance(ctx context.Context, userID int64) (int64, error)
	History(ctx context.Context, userID int64, limit, offset int) ([]domain.BalanceTransaction, error)
	Recharge(ctx context.Context, userID int64, amount int64, method string) (*domain.BalanceTransaction, error)
}

type PaymentServicer interface {
	CreateInvoice(ctx context.Context, userID int64, amount int64) (*domain.PaymentInvoice, error)
	InvoiceStatus(ctx context.Context, invoiceID, userID int64) (*domain.PaymentInvoice, error)
	VerifySignature(rawBody []byte, signature string) bool
	ProcessPaidInvoice(ctx context.Context, externalInvoiceID int64) error
}
