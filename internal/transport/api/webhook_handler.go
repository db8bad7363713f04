package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SignatureHeader заголовок с HMAC подписью тела вебхука.
const SignatureHeader = "Crypto-Pay-Api-Signature"

const updateTypeInvoicePaid = "invoice_paid"

type WebhookHandler struct {
	paymentSvs PaymentServicer
}

func NewWebhookHandler(paymentSvs PaymentServicer) *WebhookHandler {
	return &WebhookHandler{
		paymentSvs: paymentSvs,
	}
}

type webhookUpdate struct {
	UpdateType string `json:"update_type"`
	Payload    struct {
		InvoiceID int64 `json:"invoice_id"`
	} `json:"payload"`
}

// CryptoPay POST WebhookCryptoPayRoute. Идемпотентный прием подтверждения
// оплаты. Провайдеру нельзя возвращать ошибки, провоцирующие повторные
// доставки как новые платежи: невалидная подпись и незнакомые типы апдейтов
// отвечаются успешным статусом.
func (h *WebhookHandler) CryptoPay(c *gin.Context) {
	rawBody, readErr := c.GetRawData()
	if readErr != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, readErr).SetType(gin.ErrorTypePrivate)
		return
	}

	if !h.paymentSvs.VerifySignature(rawBody, c.GetHeader(SignatureHeader)) {
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}

	var update webhookUpdate
	if jsonErr := json.Unmarshal(rawBody, &update); jsonErr != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}
	if update.UpdateType != updateTypeInvoicePaid {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	// Ошибка здесь - инфраструктурная (БД недоступна). 500 допустим:
	// повторная доставка безопасна, зачисление идемпотентно.
	if processErr := h.paymentSvs.ProcessPaidInvoice(reqCtx, update.Payload.InvoiceID); processErr != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, processErr).SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
