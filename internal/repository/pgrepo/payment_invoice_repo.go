package pgrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

const paymentInvoiceColumns = `id, created_at, user_id, external_invoice_id, amount, status,
	COALESCE(pay_url, ''), COALESCE(mini_app_invoice_url, ''), balance_transaction_id, paid_at`

type PaymentInvoiceRepository struct {
	db uow.DBTX
}

func NewPaymentInvoiceRepository(db uow.DBTX) *PaymentInvoiceRepository {
	return &PaymentInvoiceRepository{db: db}
}

func (r *PaymentInvoiceRepository) Create(
	ctx context.Context,
	args repoargs.CreatePaymentInvoice,
) (*domain.PaymentInvoice, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO payment_invoices (user_id, external_invoice_id, amount, status, pay_url, mini_app_invoice_url)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
		RETURNING `+paymentInvoiceColumns,
		args.UserID, args.ExternalInvoiceID, args.Amount, domain.InvoiceStatusPending,
		args.PayURL, args.MiniAppInvoiceURL)

	invoice, err := scanPaymentInvoice(row)
	if err != nil {
		return nil, convertErr(err, "creating payment invoice for user %d", args.UserID)
	}
	return invoice, nil
}

// LockByExternalID берет блокировку FOR UPDATE на строку счета по внешнему id провайдера.
// Имеет смысл только внутри транзакции.
func (r *PaymentInvoiceRepository) LockByExternalID(
	ctx context.Context,
	externalID int64,
) (*domain.PaymentInvoice, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+paymentInvoiceColumns+` FROM payment_invoices WHERE external_invoice_id = $1 FOR UPDATE`,
		externalID)

	invoice, err := scanPaymentInvoice(row)
	if err != nil {
		return nil, convertErr(err, "locking payment invoice with external id %d", externalID)
	}
	return invoice, nil
}

func (r *PaymentInvoiceRepository) MarkPaid(
	ctx context.Context,
	id int64,
	balanceTransactionID int64,
	paidAt time.Time,
) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payment_invoices
		SET status = $2, balance_transaction_id = $3, paid_at = $4
		WHERE id = $1 AND status = $5`,
		id, domain.InvoiceStatusPaid, balanceTransactionID, paidAt, domain.InvoiceStatusPending)
	if err != nil {
		return convertErr(err, "marking invoice %d as paid", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "marking invoice %d as paid", id)
	}
	return nil
}

// GetByIDAndUser возвращает счет с проверкой принадлежности юзеру.
func (r *PaymentInvoiceRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*domain.PaymentInvoice, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+paymentInvoiceColumns+` FROM payment_invoices WHERE id = $1 AND user_id = $2`, id, userID)

	invoice, err := scanPaymentInvoice(row)
	if err != nil {
		return nil, convertErr(err, "getting payment invoice %d of user %d", id, userID)
	}
	return invoice, nil
}

func scanPaymentInvoice(row pgx.Row) (*domain.PaymentInvoice, error) {
	var inv domain.PaymentInvoice
	err := row.Scan(
		&inv.ID, &inv.CreatedAt, &inv.UserID, &inv.ExternalInvoiceID, &inv.Amount, &inv.Status,
		&inv.PayURL, &inv.MiniAppInvoiceURL, &inv.BalanceTransactionID, &inv.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
