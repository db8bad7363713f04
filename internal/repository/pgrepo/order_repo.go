package pgrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

const orderColumns = `id, created_at, updated_at, client_id, category, description, city, contact,
	status, city_locked, expires_in_minutes, customer_responded_at`

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (id, client_id, category, description, city, contact, status, city_locked, expires_in_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8)
		RETURNING `+orderColumns,
		args.ID, args.ClientID, args.Category, args.Description, args.City, args.Contact,
		domain.OrderStatusActive, args.ExpiresInMinutes)

	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for client %d", args.ClientID)
	}
	return order, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "getting order `%s`", id)
	}
	return order, nil
}

// LockByID берет блокировку FOR UPDATE на строку заказа. Имеет смысл только внутри транзакции.
func (r *OrderRepository) LockByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "locking order `%s`", id)
	}
	return order, nil
}

func (r *OrderRepository) FindActiveByContact(ctx context.Context, contact string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE contact = $1 AND status = $2 LIMIT 1`,
		contact, domain.OrderStatusActive)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding active order by contact")
	}
	return order, nil
}

// List возвращает срез заказов и общее количество под те же фильтры.
func (r *OrderRepository) List(ctx context.Context, args repoargs.ListOrders) ([]domain.Order, int64, error) {
	var conditions []string
	var queryArgs []any

	addCondition := func(expr string, value any) {
		queryArgs = append(queryArgs, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(queryArgs)))
	}

	if args.ClientID != 0 {
		addCondition("client_id = $%d", args.ClientID)
	}
	if len(args.Statuses) > 0 {
		statuses := make([]string, len(args.Statuses))
		for i, s := range args.Statuses {
			statuses[i] = string(s)
		}
		addCondition("status = ANY($%d)", statuses)
	}
	if args.Category != "" {
		addCondition("category = $%d", args.Category)
	}
	if args.City != "" {
		addCondition("city = $%d", args.City)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM orders`+where, queryArgs...).Scan(&total); err != nil {
		return nil, 0, convertErr(err, "counting orders")
	}

	listQuery := fmt.Sprintf(`SELECT `+orderColumns+` FROM orders`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(queryArgs)+1, len(queryArgs)+2)
	queryArgs = append(queryArgs, args.Limit, args.Offset)

	rows, err := r.db.Query(ctx, listQuery, queryArgs...)
	if err != nil {
		return nil, 0, convertErr(err, "listing orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, 0, convertErr(scanErr, "listing orders")
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, 0, convertErr(rowsErr, "listing orders")
	}
	return orders, total, nil
}

func (r *OrderRepository) UpdateFields(
	ctx context.Context,
	id string,
	patch repoargs.OrderPatch,
) (*domain.Order, error) {
	// nil-поля в COALESCE оставляют текущее значение. Город не патчится никогда.
	row := r.db.QueryRow(ctx, `
		UPDATE orders SET
			category = COALESCE($2, category),
			description = COALESCE($3, description),
			contact = COALESCE($4, contact),
			updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, patch.Category, patch.Description, patch.Contact)

	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "updating order `%s`", id)
	}
	return order, nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id string, status domain.OrderStatusType) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return convertErr(err, "setting status %s on order `%s`", status, id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "setting status %s on order `%s`", status, id)
	}
	return nil
}

func (r *OrderRepository) SetCustomerRespondedAt(
	ctx context.Context,
	id string,
	at time.Time,
) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders SET customer_responded_at = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id, at)

	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "setting customer_responded_at on order `%s`", id)
	}
	return order, nil
}

func (r *OrderRepository) GetActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM orders WHERE status = $1 ORDER BY created_at`, domain.OrderStatusActive)
	if err != nil {
		return nil, convertErr(err, "getting active order ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, convertErr(scanErr, "getting active order ids")
		}
		ids = append(ids, id)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting active order ids")
	}
	return ids, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.CreatedAt, &o.UpdatedAt, &o.ClientID, &o.Category, &o.Description, &o.City,
		&o.Contact, &o.Status, &o.CityLocked, &o.ExpiresInMinutes, &o.CustomerRespondedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
