package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "laundromat/internal/domain/errors"
	"laundromat/internal/domain/model"
	"laundromat/internal/domain/repository"
)

// dbPool is the subset of pgxpool.Pool the repositories rely on; tests swap
// in a pgxmock pool through it.
type dbPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (dbPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type adminRepository struct {
	storage *Storage
}

type customerRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Admins() repository.AdminRepository {
	return &adminRepository{storage: s}
}

func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admins (
            id TEXT PRIMARY KEY,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS customers (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            full_address TEXT NOT NULL,
            landmark TEXT NOT NULL DEFAULT '',
            map_code TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            customer_id TEXT NOT NULL REFERENCES customers(id),
            description TEXT NOT NULL DEFAULT '',
            weight_grams INT NOT NULL,
            price_near BIGINT NOT NULL,
            payment_type TEXT NOT NULL,
            status TEXT NOT NULL,
            feedback TEXT NOT NULL,
            feedback_comment TEXT NOT NULL DEFAULT '',
            pickup_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            delivered_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id, pickup_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, pickup_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- AdminRepository implementation ---

func (r *adminRepository) Create(ctx context.Context, id string) (*model.Admin, error) {
	const query = `INSERT INTO admins (id) VALUES ($1) RETURNING created_at, updated_at`
	admin := model.Admin{ID: id, Role: model.RoleAdmin}
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.Conflict("admin %s already exists", id)
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Get(ctx context.Context, id string) (*model.Admin, error) {
	const query = `SELECT id, created_at, updated_at FROM admins WHERE id=$1`
	admin := model.Admin{Role: model.RoleAdmin}
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.NotFound("admin %s not found", id)
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context) ([]model.Admin, error) {
	const query = `SELECT id, created_at, updated_at FROM admins ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Admin
	for rows.Next() {
		admin := model.Admin{Role: model.RoleAdmin}
		if err := rows.Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CustomerRepository implementation ---

func (r *customerRepository) Create(ctx context.Context, id string, profile model.CustomerProfile) (*model.Customer, error) {
	const query = `INSERT INTO customers (id, name, full_address, landmark, map_code, phone, email)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING created_at, updated_at`
	customer := model.Customer{
		ID:          id,
		Name:        profile.Name,
		FullAddress: profile.FullAddress,
		Landmark:    profile.Landmark,
		MapCode:     profile.MapCode,
		Phone:       profile.Phone,
		Email:       profile.Email,
		Role:        model.RoleCustomer,
	}
	err := r.storage.pool.QueryRow(ctx, query,
		id, profile.Name, profile.FullAddress, profile.Landmark, profile.MapCode, profile.Phone, profile.Email,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.Conflict("customer %s already exists", id)
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*model.Customer, error) {
	const query = `SELECT id, name, full_address, landmark, map_code, phone, email, created_at, updated_at
                   FROM customers WHERE id=$1`
	customer := model.Customer{Role: model.RoleCustomer}
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&customer.ID, &customer.Name, &customer.FullAddress, &customer.Landmark,
		&customer.MapCode, &customer.Phone, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.NotFound("customer %s not found", id)
		}
		return nil, err
	}

	if customer.OrderIDs, err = r.orderIDs(ctx, id); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, id string, profile model.CustomerProfile) (*model.Customer, error) {
	const query = `UPDATE customers
                   SET name=$2, full_address=$3, landmark=$4, map_code=$5, phone=$6, email=$7, updated_at=NOW()
                   WHERE id=$1
                   RETURNING created_at, updated_at`
	customer := model.Customer{
		ID:          id,
		Name:        profile.Name,
		FullAddress: profile.FullAddress,
		Landmark:    profile.Landmark,
		MapCode:     profile.MapCode,
		Phone:       profile.Phone,
		Email:       profile.Email,
		Role:        model.RoleCustomer,
	}
	err := r.storage.pool.QueryRow(ctx, query,
		id, profile.Name, profile.FullAddress, profile.Landmark, profile.MapCode, profile.Phone, profile.Email,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.NotFound("customer %s not found", id)
		}
		return nil, err
	}

	if customer.OrderIDs, err = r.orderIDs(ctx, id); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	const query = `SELECT id, name, full_address, landmark, map_code, phone, email, created_at, updated_at
                   FROM customers ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Customer
	for rows.Next() {
		customer := model.Customer{Role: model.RoleCustomer}
		if err := rows.Scan(
			&customer.ID, &customer.Name, &customer.FullAddress, &customer.Landmark,
			&customer.MapCode, &customer.Phone, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// orderIDs rebuilds the customer's append-only order list from the orders
// table, oldest placement first.
func (r *customerRepository) orderIDs(ctx context.Context, customerID string) ([]string, error) {
	const query = `SELECT id FROM orders WHERE customer_id=$1 ORDER BY pickup_at`
	rows, err := r.storage.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, customer_id, description, weight_grams, price_near, payment_type,
                      status, feedback, feedback_comment, pickup_at, delivered_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.Description, &o.WeightGrams, &o.PriceNear, &o.PaymentType,
		&o.Status, &o.Feedback, &o.FeedbackComment, &o.PickupAt, &o.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders
            (id, customer_id, description, weight_grams, price_near, payment_type, status, feedback, feedback_comment, pickup_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		_, err := tx.Exec(ctx, insertOrder,
			order.ID, order.CustomerID, order.Description, order.WeightGrams, order.PriceNear,
			order.PaymentType, order.Status, order.Feedback, order.FeedbackComment, order.PickupAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				case "23505":
					return domainErrors.Conflict("order %s already exists", order.ID)
				case "23503":
					return domainErrors.NotFound("customer %s not found", order.CustomerID)
				}
			}
			return err
		}

		// The customer's order list grew; reflect it on the record timestamp.
		const touchCustomer = `UPDATE customers SET updated_at=NOW() WHERE id=$1`
		if _, err := tx.Exec(ctx, touchCustomer, order.CustomerID); err != nil {
			return err
		}
		return nil
	})
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.NotFound("order %s not found", id)
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY pickup_at`
	return r.queryOrders(ctx, query)
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id=$1 ORDER BY pickup_at`
	return r.queryOrders(ctx, query, customerID)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, deliveredAt *time.Time) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// The row lock plus the status check make the transition claim
		// atomic outside a single-writer host: the second of two concurrent
		// attempts reads the committed status and conflicts.
		const lockOrder = `SELECT status FROM orders WHERE id=$1 FOR UPDATE`
		var current model.OrderStatus
		if err := tx.QueryRow(ctx, lockOrder, id).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.NotFound("order %s not found", id)
			}
			return err
		}
		if current != from {
			return domainErrors.Conflict("order %s is already %s", id, current)
		}

		const updateOrder = `UPDATE orders SET status=$2, delivered_at=COALESCE($3, delivered_at) WHERE id=$1`
		if _, err := tx.Exec(ctx, updateOrder, id, to, deliveredAt); err != nil {
			return err
		}
		return nil
	})
}

func (r *orderRepository) SetFeedback(ctx context.Context, id string, feedback model.Feedback, comment string) error {
	const query = `UPDATE orders SET feedback=$2, feedback_comment=$3 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, feedback, comment)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.NotFound("order %s not found", id)
	}
	return nil
}

func (r *orderRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE status IN ('CONFIRMED', 'IN_PROGRESS') AND pickup_at < $1
              ORDER BY pickup_at
              LIMIT $2`
	return r.queryOrders(ctx, query, cutoff, limit)
}

func (r *orderRepository) EscrowTotals(ctx context.Context) ([]repository.EscrowTotal, error) {
	const query = `SELECT status, COUNT(*), COALESCE(SUM(price_near), 0)
                   FROM orders GROUP BY status ORDER BY status`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []repository.EscrowTotal
	for rows.Next() {
		var t repository.EscrowTotal
		if err := rows.Scan(&t.Status, &t.Orders, &t.Sum); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}
