package repoargs

import (
	"github.com/fsdevblog/srochno-market/internal/domain"
)

type CreateOrder struct {
	ID               string
	ClientID         int64
	Category         string
	Description      string
	City             string
	Contact          string
	ExpiresInMinutes int
}

// OrderPatch частичное обновление заказа. nil-поля не меняются.
// Город не патчится: после создания он заблокирован.
type OrderPatch struct {
	Category    *string
	Description *string
	Contact     *string
}

type ListOrders struct {
	Category string
	City     string
	Statuses []domain.OrderStatusType
	ClientID int64
	Limit    int
	Offset   int
}
