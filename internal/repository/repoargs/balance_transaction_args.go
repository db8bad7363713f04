package repoargs

import (
	"github.com/fsdevblog/srochno-market/internal/domain"
)

type CreateBalanceTransaction struct {
	UserID                int64
	Type                  domain.TransactionType
	Amount                int64
	BalanceAfter          int64
	OrderID               string
	PaymentMethod         string
	ExternalTransactionID string
	Description           string
}
