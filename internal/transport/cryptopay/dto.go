package cryptopay

import (
	"github.com/shopspring/decimal"
)

// createInvoiceRequest тело запроса createInvoice. Суммы провайдер принимает
// строкой в фиатной валюте, внутренние целые рубли конвертируются через decimal
// только на этой границе.
type createInvoiceRequest struct {
	CurrencyType string `json:"currency_type"`
	Fiat         string `json:"fiat"`
	Amount       string `json:"amount"`
	Description  string `json:"description"`
	ExpiresIn    int    `json:"expires_in"`
}

type invoiceResult struct {
	InvoiceID         int64           `json:"invoice_id"`
	Status            string          `json:"status"`
	Amount            decimal.Decimal `json:"amount"`
	BotInvoiceURL     string          `json:"bot_invoice_url"`
	MiniAppInvoiceURL string          `json:"mini_app_invoice_url"`
}

type apiResponse struct {
	OK     bool           `json:"ok"`
	Result *invoiceResult `json:"result"`
	Error  *apiError      `json:"error"`
}

type apiError struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}
