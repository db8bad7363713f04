package pgrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/srochno-market/internal/domain"
	"github.com/fsdevblog/srochno-market/internal/repository/repoargs"
	"github.com/fsdevblog/srochno-market/pkg/uow"
)

const userColumns = `id, created_at, updated_at, username, first_name, last_name, language_code,
	balance, active_orders_count, completed_orders_count, average_rating,
	notifications_enabled, subscribed_categories, subscribed_cities,
	notification_frequency_minutes, last_notified_at`

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert создает юзера при первом входе через telegram. При повторных входах
// обновляет только профильные поля, балансы и счетчики не трогает.
func (r *UserRepository) Upsert(ctx context.Context, args repoargs.UpsertUser) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, username, first_name, last_name, language_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			language_code = EXCLUDED.language_code,
			updated_at = now()
		RETURNING `+userColumns,
		args.ID, args.Username, args.FirstName, args.LastName, args.LanguageCode)

	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "upserting user with id %d", args.ID)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "getting user with id %d", id)
	}
	return user, nil
}

// LockByID берет блокировку FOR UPDATE на строку юзера и возвращает свежее состояние.
// Имеет смысл только внутри транзакции.
func (r *UserRepository) LockByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "locking user with id %d", id)
	}
	return user, nil
}

func (r *UserRepository) AddBalance(ctx context.Context, id int64, delta int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `
		UPDATE users SET balance = balance + $2, updated_at = now()
		WHERE id = $1
		RETURNING balance`, id, delta).Scan(&balance)
	if err != nil {
		return 0, convertErr(err, "adding %d to balance of user %d", delta, id)
	}
	return balance, nil
}

func (r *UserRepository) AdjustCounters(ctx context.Context, id int64, deltas repoargs.AdjustCounters) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET
			active_orders_count = GREATEST(0, active_orders_count + $2),
			completed_orders_count = completed_orders_count + $3,
			updated_at = now()
		WHERE id = $1`, id, deltas.ActiveDelta, deltas.CompletedDelta)
	if err != nil {
		return convertErr(err, "adjusting counters of user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "adjusting counters of user %d", id)
	}
	return nil
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id int64, categories, cities []string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET subscribed_categories = $2, subscribed_cities = $3, updated_at = now()
		WHERE id = $1`, id, categories, cities)
	if err != nil {
		return convertErr(err, "updating preferences of user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "updating preferences of user %d", id)
	}
	return nil
}

func (r *UserRepository) UpdateNotificationSettings(
	ctx context.Context,
	id int64,
	args repoargs.UpdateNotificationSettings,
) error {
	// nil-поля в COALESCE оставляют текущее значение.
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET
			notifications_enabled = COALESCE($2, notifications_enabled),
			notification_frequency_minutes = COALESCE($3, notification_frequency_minutes),
			updated_at = now()
		WHERE id = $1`, id, args.Enabled, args.FrequencyMinutes)
	if err != nil {
		return convertErr(err, "updating notification settings of user %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "updating notification settings of user %d", id)
	}
	return nil
}

func (r *UserRepository) FindSubscribed(
	ctx context.Context,
	category, city string,
	excludeID int64,
) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE notifications_enabled
			AND $1 = ANY(subscribed_categories)
			AND $2 = ANY(subscribed_cities)
			AND id <> $3`, category, city, excludeID)
	if err != nil {
		return nil, convertErr(err, "finding subscribed users for %s/%s", category, city)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "finding subscribed users for %s/%s", category, city)
		}
		users = append(users, *user)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "finding subscribed users for %s/%s", category, city)
	}
	return users, nil
}

func (r *UserRepository) SetLastNotifiedAt(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.db.Exec(ctx,
		`UPDATE users SET last_notified_at = $2, updated_at = now() WHERE id = $1`, id, at); err != nil {
		return convertErr(err, "setting last_notified_at of user %d", id)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Username, &u.FirstName, &u.LastName, &u.LanguageCode,
		&u.Balance, &u.ActiveOrdersCount, &u.CompletedOrdersCount, &u.AverageRating,
		&u.NotificationsEnabled, &u.SubscribedCategories, &u.SubscribedCities,
		&u.NotificationFrequencyMinutes, &u.LastNotifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
