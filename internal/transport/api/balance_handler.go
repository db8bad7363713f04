package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/srochno-market/internal/domain"
)

type BalanceHandler struct {
	ledgerSvs  BalanceServicer
	paymentSvs PaymentServicer
}

func NewBalanceHandler(ledgerSvs BalanceServicer, paymentSvs PaymentServicer) *BalanceHandler {
	return &BalanceHandler{
		ledgerSvs:  ledgerSvs,
		paymentSvs: paymentSvs,
	}
}

type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// Index GET RouteGroup + BalanceRoute.
func (b *BalanceHandler) Index(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, getErr := b.ledgerSvs.GetBalance(reqCtx, currentUserID)
	if getErr != nil {
		abortWithDomainError(c, getErr)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Balance: balance})
}

type TransactionResponse struct {
	ID           int64                  `json:"id"`
	CreatedAt    time.Time              `json:"created_at"`
	Type         domain.TransactionType `json:"type"`
	Amount       int64                  `json:"amount"`
	BalanceAfter int64                  `json:"balance_after"`
	OrderID      string                 `json:"order_id,omitempty"`
	Description  string                 `json:"description,omitempty"`
}

type HistoryParams struct {
	Limit  int `binding:"omitempty,min=1,max=100" form:"limit"`
	Offset int `binding:"omitempty,min=0"         form:"offset"`
}

// History GET RouteGroup + BalanceHistoryRoute. Журнал операций по убыванию даты.
func (b *BalanceHandler) History(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params HistoryParams
	if bindErr := c.ShouldBindQuery(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}
	if params.Limit == 0 {
		params.Limit = defaultHistoryLimit
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transactions, listErr := b.ledgerSvs.History(reqCtx, currentUserID, params.Limit, params.Offset)
	if listErr != nil {
		abortWithDomainError(c, listErr)
		return
	}

	response := make([]TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		response[i] = TransactionResponse{
			ID:           transaction.ID,
			CreatedAt:    transaction.CreatedAt,
			Type:         transaction.Type,
			Amount:       transaction.Amount,
			BalanceAfter: transaction.BalanceAfter,
			OrderID:      transaction.OrderID,
			Description:  transaction.Description,
		}
	}
	c.JSON(http.StatusOK, response)
}

type RechargeParams struct {
	Amount int64  `binding:"required,min=1,max=100000" json:"amount"`
	Method string `binding:"omitempty,max=50"          json:"method"`
}

// Recharge POST RouteGroup + BalanceRechargeRoute. Прямое пополнение баланса
// без платежного провайдера, для дев-стендов.
func (b *BalanceHandler) Recharge(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params RechargeParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}
	if params.Method == "" {
		params.Method = "manual"
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transaction, rechargeErr := b.ledgerSvs.Recharge(reqCtx, currentUserID, params.Amount, params.Method)
	if rechargeErr != nil {
		abortWithDomainError(c, rechargeErr)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{
		ID:           transaction.ID,
		CreatedAt:    transaction.CreatedAt,
		Type:         transaction.Type,
		Amount:       transaction.Amount,
		BalanceAfter: transaction.BalanceAfter,
		Description:  transaction.Description,
	})
}

type InvoiceParams struct {
	Amount int64 `binding:"required,min=1,max=100000" json:"amount"`
}

type InvoiceResponse struct {
	ID                int64                    `json:"id"`
	Amount            int64                    `json:"amount"`
	Status            domain.InvoiceStatusType `json:"status"`
	PayURL            string                   `json:"pay_url"`
	MiniAppInvoiceURL string                   `json:"mini_app_invoice_url,omitempty"`
	PaidAt            *time.Time               `json:"paid_at,omitempty"`
}

func newInvoiceResponse(invoice *domain.PaymentInvoice) InvoiceResponse {
	return InvoiceResponse{
		ID:                invoice.ID,
		Amount:            invoice.Amount,
		Status:            invoice.Status,
		PayURL:            invoice.PayURL,
		MiniAppInvoiceURL: invoice.MiniAppInvoiceURL,
		PaidAt:            invoice.PaidAt,
	}
}

// CreateInvoice POST RouteGroup + BalanceInvoiceRoute. Выставляет счет
// на пополнение у платежного провайдера.
func (b *BalanceHandler) CreateInvoice(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params InvoiceParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	// Внешний вызов провайдера дольше обычного запроса в БД.
	reqCtx, cancel := context.WithTimeout(c, GatewayServiceTimeout)
	defer cancel()

	invoice, createErr := b.paymentSvs.CreateInvoice(reqCtx, currentUserID, params.Amount)
	if createErr != nil {
		abortWithDomainError(c, createErr)
		return
	}
	c.JSON(http.StatusCreated, newInvoiceResponse(invoice))
}

// InvoiceStatus GET RouteGroup + BalanceInvoiceRoute + /:id. Поллинг статуса счета.
func (b *BalanceHandler) InvoiceStatus(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	invoiceID, parseErr := strconv.ParseInt(c.Param("id"), 10, 64)
	if parseErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, parseErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	invoice, getErr := b.paymentSvs.InvoiceStatus(reqCtx, invoiceID, currentUserID)
	if getErr != nil {
		abortWithDomainError(c, getErr)
		return
	}
	c.JSON(http.StatusOK, newInvoiceResponse(invoice))
}
