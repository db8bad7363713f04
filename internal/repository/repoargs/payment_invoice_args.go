package repoargs

type CreatePaymentInvoice struct {
	UserID            int64
	ExternalInvoiceID int64
	Amount            int64
	PayURL            string
	MiniAppInvoiceURL string
}
