package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/graphql-crm/internal/apperr"
	"github.com/tuanvumaihuynh/graphql-crm/internal/model"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
)

// CustomerEmailConstraint is the unique constraint on customers.email.
const CustomerEmailConstraint = "customers_email_key"

type CustomerFilter struct {
	NameIcontains  *string
	EmailIcontains *string
	CreatedAtGte   *time.Time
	CreatedAtLte   *time.Time
	PhonePattern   *string
}

type ListCustomersParams struct {
	Filter  CustomerFilter
	OrderBy []string
	Page    Page
}

type CustomerRepository interface {
	WithDB(db db.DB) CustomerRepository
	CreateCustomer(ctx context.Context, customer model.Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListCustomers(ctx context.Context, params ListCustomersParams) ([]model.Customer, error)
	CountCustomers(ctx context.Context, filter CustomerFilter) (int, error)
}

var customerOrderColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"phone":      "phone",
	"createdAt":  "created_at",
	"created_at": "created_at",
}

type customerRepository struct {
	db db.DB
}

func NewCustomerRepository(db db.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r customerRepository) WithDB(db db.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r customerRepository) CreateCustomer(ctx context.Context, customer model.Customer) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES (@id, @name, @email, @phone, @created_at)
	`, pgx.NamedArgs{
		"id":         customer.ID,
		"name":       customer.Name,
		"email":      customer.Email,
		"phone":      customer.Phone,
		"created_at": customer.CreatedAt,
	}); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

func (r customerRepository) GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1
	`, id)
	if err != nil {
		return model.Customer{}, fmt.Errorf("query customer: %w", err)
	}

	customer, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[model.Customer])
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Customer{}, apperr.NotFoundErr.WithMsg("customer %s not found", id).WrapParent(err)
	}
	if err != nil {
		return model.Customer{}, fmt.Errorf("collect customer: %w", err)
	}

	return customer, nil
}

func (r customerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`, email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("query email exists: %w", err)
	}

	return exists, nil
}

func (r customerRepository) ListCustomers(ctx context.Context, params ListCustomersParams) ([]model.Customer, error) {
	b := customerWhere(params.Filter)
	orderBy, err := orderByClause(params.OrderBy, customerOrderColumns)
	if err != nil {
		return nil, err
	}

	sql := `SELECT id, name, email, phone, created_at FROM customers` +
		b.whereClause() + orderBy + params.Page.clause(&b)

	rows, err := r.db.Query(ctx, sql, b.args...)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}

	customers, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.Customer])
	if err != nil {
		return nil, fmt.Errorf("collect customers: %w", err)
	}

	return customers, nil
}

func (r customerRepository) CountCustomers(ctx context.Context, filter CustomerFilter) (int, error) {
	b := customerWhere(filter)

	var count int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers`+b.whereClause(), b.args...,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}

func customerWhere(f CustomerFilter) sqlBuilder {
	var b sqlBuilder
	b.icontains("name", f.NameIcontains)
	b.icontains("email", f.EmailIcontains)
	gte(&b, "created_at", f.CreatedAtGte)
	lte(&b, "created_at", f.CreatedAtLte)
	b.startsWith("phone", f.PhonePattern)
	return b
}
