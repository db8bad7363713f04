package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

const balanceTransactionColumns = `id, created_at, user_id, type, amount, balance_after,
	COALESCE(order_id, ''), COALESCE(payment_method, ''), COALESCE(external_transaction_id, ''),
	COALESCE(description, '')`

type BalanceTransactionRepository struct {
	db uow.DBTX
}

func NewBalanceTransactionRepository(db uow.DBTX) *BalanceTransactionRepository {
	return &BalanceTransactionRepository{db: db}
}

// Create добавляет запись в журнал. Журнал append-only: методов обновления
// и удаления у репозитория нет намеренно.
func (r *BalanceTransactionRepository) Create(
	ctx context.Context,
	args repoargs.CreateBalanceTransaction,
) (*domain.BalanceTransaction, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO balance_transactions
			(user_id, type, amount, balance_after, order_id, payment_method, external_transaction_id, description)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		RETURNING `+balanceTransactionColumns,
		args.UserID, args.Type, args.Amount, args.BalanceAfter,
		args.OrderID, args.PaymentMethod, args.ExternalTransactionID, args.Description)

	transaction, err := scanBalanceTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating balance transaction for user %d", args.UserID)
	}
	return transaction, nil
}

// GetByUserID возвращает историю операций юзера по убыванию даты создания.
func (r *BalanceTransactionRepository) GetByUserID(
	ctx context.Context,
	userID int64,
	limit, offset int,
) ([]domain.BalanceTransaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+balanceTransactionColumns+` FROM balance_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, convertErr(err, "getting balance transactions of user %d", userID)
	}
	defer rows.Close()

	var transactions []domain.BalanceTransaction
	for rows.Next() {
		transaction, scanErr := scanBalanceTransaction(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting balance transactions of user %d", userID)
		}
		transactions = append(transactions, *transaction)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting balance transactions of user %d", userID)
	}
	return transactions, nil
}

func scanBalanceTransaction(row pgx.Row) (*domain.BalanceTransaction, error) {
	var t domain.BalanceTransaction
	err := row.Scan(
		&t.ID, &t.CreatedAt, &t.UserID, &t.Type, &t.Amount, &t.BalanceAfter,
		&t.OrderID, &t.PaymentMethod, &t.ExternalTransactionID, &t.Description,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
