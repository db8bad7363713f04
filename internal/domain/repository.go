package domain

import (
	"context"
	"time"

	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
)

//go:generate mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

type UserRepository interface {
	Upsert(ctx context.Context, args repoargs.UpsertUser) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// LockByID берет эксклюзивную блокировку строки юзера (SELECT ... FOR UPDATE)
	// и возвращает свежее состояние. Валидно только внутри транзакции.
	LockByID(ctx context.Context, id int64) (*User, error)
	// AddBalance изменяет баланс на delta и возвращает новое значение.
	AddBalance(ctx context.Context, id int64, delta int64) (int64, error)
	AdjustCounters(ctx context.Context, id int64, deltas repoargs.AdjustCounters) error
	UpdatePreferences(ctx context.Context, id int64, categories, cities []string) error
	UpdateNotificationSettings(ctx context.Context, id int64, args repoargs.UpdateNotificationSettings) error
	// FindSubscribed возвращает юзеров с включенными уведомлениями, подписанных
	// одновременно на категорию и город, исключая excludeID.
	FindSubscribed(ctx context.Context, category, city string, excludeID int64) ([]User, error)
	SetLastNotifiedAt(ctx context.Context, id int64, at time.Time) error
}

type OrderRepository interface {
	Create(ctx context.Context, args repoargs.CreateOrder) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	// LockByID берет эксклюзивную блокировку строки заказа. Валидно только внутри транзакции.
	LockByID(ctx context.Context, id string) (*Order, error)
	FindActiveByContact(ctx context.Context, contact string) (*Order, error)
	List(ctx context.Context, args repoargs.ListOrders) ([]Order, int64, error)
	UpdateFields(ctx context.Context, id string, patch repoargs.OrderPatch) (*Order, error)
	SetStatus(ctx context.Context, id string, status OrderStatusType) error
	SetCustomerRespondedAt(ctx context.Context, id string, at time.Time) (*Order, error)
	// GetActiveIDs возвращает id всех активных заказов. Снимок для свипера,
	// каждый заказ потом перечитывается под блокировкой.
	GetActiveIDs(ctx context.Context) ([]string, error)
}

type TakeRepository interface {
	Create(ctx context.Context, orderID string, executorID int64) (*ExecutorTake, error)
	GetByOrderID(ctx context.Context, orderID string) ([]ExecutorTake, error)
}

type BalanceTransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreateBalanceTransaction) (*BalanceTransaction, error)
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]BalanceTransaction, error)
}

type PaymentInvoiceRepository interface {
	Create(ctx context.Context, args repoargs.CreatePaymentInvoice) (*PaymentInvoice, error)
	// LockByExternalID берет эксклюзивную блокировку строки счета по внешнему id.
	LockByExternalID(ctx context.Context, externalID int64) (*PaymentInvoice, error)
	MarkPaid(ctx context.Context, id int64, balanceTransactionID int64, paidAt time.Time) error
	GetByIDAndUser(ctx context.Context, id, userID int64) (*PaymentInvoice, error)
}
