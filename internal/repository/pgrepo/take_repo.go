package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

const takeColumns = `id, order_id, executor_id, taken_at`

type TakeRepository struct {
	db uow.DBTX
}

func NewTakeRepository(db uow.DBTX) *TakeRepository {
	return &TakeRepository{db: db}
}

// Create создает заявку исполнителя. Уникальность пары (order, executor)
// обеспечивает constraint в БД, дубликат вернется как domain.ErrDuplicateKey.
func (r *TakeRepository) Create(ctx context.Context, orderID string, executorID int64) (*domain.ExecutorTake, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO executor_takes (order_id, executor_id)
		VALUES ($1, $2)
		RETURNING `+takeColumns, orderID, executorID)

	take, err := scanTake(row)
	if err != nil {
		return nil, convertErr(err, "creating take of order `%s` by executor %d", orderID, executorID)
	}
	return take, nil
}

// GetByOrderID возвращает заявки на заказ, отсортированные по времени от ранней к поздней.
func (r *TakeRepository) GetByOrderID(ctx context.Context, orderID string) ([]domain.ExecutorTake, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+takeColumns+` FROM executor_takes WHERE order_id = $1 ORDER BY taken_at`, orderID)
	if err != nil {
		return nil, convertErr(err, "getting takes of order `%s`", orderID)
	}
	defer rows.Close()

	var takes []domain.ExecutorTake
	for rows.Next() {
		take, scanErr := scanTake(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting takes of order `%s`", orderID)
		}
		takes = append(takes, *take)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting takes of order `%s`", orderID)
	}
	return takes, nil
}

func scanTake(row pgx.Row) (*domain.ExecutorTake, error) {
	var t domain.ExecutorTake
	if err := row.Scan(&t.ID, &t.OrderID, &t.ExecutorID, &t.TakenAt); err != nil {
		return nil, err
	}
	return &t, nil
}
