package domain

import (
	"time"
)

type OrderStatusType string

const (
	OrderStatusActive           OrderStatusType = "active"
	OrderStatusExpired          OrderStatusType = "expired"
	OrderStatusDeleted          OrderStatusType = "deleted"
	OrderStatusClosedNoResponse OrderStatusType = "closed_no_response"
	OrderStatusCompleted        OrderStatusType = "completed"
)

// IsTerminal сообщает, является ли статус конечным. Из конечного статуса переходов нет.
func (s OrderStatusType) IsTerminal() bool {
	return s != OrderStatusActive
}

// ListableStatuses статусы, доступные в публичной выдаче списка заказов.
// closed_no_response и deleted наружу не отдаются никогда.
var ListableStatuses = []OrderStatusType{
	OrderStatusActive,
	OrderStatusExpired,
	OrderStatusCompleted,
}

func IsListableStatus(s OrderStatusType) bool {
	for _, ls := range ListableStatuses {
		if s == ls {
			return true
		}
	}
	return false
}

type TransactionType string

const (
	TransactionRecharge  TransactionType = "recharge"
	TransactionOrderTake TransactionType = "order_take"
	TransactionRefund    TransactionType = "refund"
)

type InvoiceStatusType string

const (
	InvoiceStatusPending InvoiceStatusType = "pending"
	InvoiceStatusPaid    InvoiceStatusType = "paid"
	InvoiceStatusExpired InvoiceStatusType = "expired"
)

// User аккаунт клиента/исполнителя. ID совпадает с telegram id.
// Баланс в целых рублях, меняется только через операции леджера.
type User struct {
	ID                   int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Username             string
	FirstName            string
	LastName             string
	LanguageCode         string
	Balance              int64
	ActiveOrdersCount    int
	CompletedOrdersCount int
	AverageRating        float64

	NotificationsEnabled         bool
	SubscribedCategories         []string
	SubscribedCities             []string
	NotificationFrequencyMinutes int
	LastNotifiedAt               *time.Time
}

type Order struct {
	ID                  string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ClientID            int64
	Category            string
	Description         string
	City                string
	Contact             string
	Status              OrderStatusType
	CityLocked          bool
	ExpiresInMinutes    int
	CustomerRespondedAt *time.Time
}

// ExpiresAt момент истечения срока жизни заказа.
func (o *Order) ExpiresAt() time.Time {
	return o.CreatedAt.Add(time.Duration(o.ExpiresInMinutes) * time.Minute)
}

// IsExpired сообщает, истек ли срок жизни заказа к моменту now.
func (o *Order) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt())
}

// MinutesLeft возвращает кол-во целых минут до истечения срока жизни, но не меньше 0.
func (o *Order) MinutesLeft(now time.Time) int {
	remaining := o.ExpiresAt().Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Minute)
}

// ExecutorTake платная заявка исполнителя на заказ. Пара (order, executor) уникальна,
// запись после создания не меняется.
type ExecutorTake struct {
	ID         int64
	OrderID    string
	ExecutorID int64
	TakenAt    time.Time
}

// BalanceTransaction запись журнала операций по балансу. Append-only: после создания
// не обновляется и не удаляется. Amount со знаком, отрицательный для списаний.
type BalanceTransaction struct {
	ID                    int64
	CreatedAt             time.Time
	UserID                int64
	Type                  TransactionType
	Amount                int64
	BalanceAfter          int64
	OrderID               string
	PaymentMethod         string
	ExternalTransactionID string
	Description           string
}

// PaymentInvoice счет на оплату у внешнего платежного провайдера.
// Статус меняется только pending -> paid|expired.
type PaymentInvoice struct {
	ID                   int64
	CreatedAt            time.Time
	UserID               int64
	ExternalInvoiceID    int64
	Amount               int64
	Status               InvoiceStatusType
	PayURL               string
	MiniAppInvoiceURL    string
	BalanceTransactionID *int64
	PaidAt               *time.Time
}
