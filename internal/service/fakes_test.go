package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/graphql-crm/internal/apperr"
	"github.com/tuanvumaihuynh/graphql-crm/internal/model"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
)

var discardLogger = slog.New(slog.DiscardHandler)

// fakeDB runs transactions inline against the in-memory repositories.
type fakeDB struct {
	db.DB
	txCount int
}

func (f *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	f.txCount++
	return txFunc(f)
}

type fakeCustomerRepo struct {
	customers []model.Customer
	createErr error
	// failEmails fails CreateCustomer for the listed emails only.
	failEmails map[string]error
}

func (r *fakeCustomerRepo) WithDB(db.DB) repository.CustomerRepository { return r }

func (r *fakeCustomerRepo) CreateCustomer(_ context.Context, c model.Customer) error {
	if r.createErr != nil {
		return r.createErr
	}
	if err := r.failEmails[c.Email]; err != nil {
		return err
	}
	r.customers = append(r.customers, c)
	return nil
}

func (r *fakeCustomerRepo) GetCustomer(_ context.Context, id uuid.UUID) (model.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Customer{}, apperr.NotFoundErr
}

func (r *fakeCustomerRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCustomerRepo) ListCustomers(context.Context, repository.ListCustomersParams) ([]model.Customer, error) {
	return r.customers, nil
}

func (r *fakeCustomerRepo) CountCustomers(context.Context, repository.CustomerFilter) (int, error) {
	return len(r.customers), nil
}

type fakeProductRepo struct {
	products []model.Product
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, p model.Product) error {
	r.products = append(r.products, p)
	return nil
}

func (r *fakeProductRepo) GetProductsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Product, error) {
	byID := map[uuid.UUID]model.Product{}
	for _, id := range ids {
		for _, p := range r.products {
			if p.ID == id {
				byID[id] = p
			}
		}
	}
	return byID, nil
}

func (r *fakeProductRepo) ListLowStockProducts(_ context.Context, threshold int) ([]model.Product, error) {
	var low []model.Product
	for _, p := range r.products {
		if p.Stock < threshold {
			low = append(low, p)
		}
	}
	return low, nil
}

func (r *fakeProductRepo) UpdateProductStock(_ context.Context, params repository.UpdateProductStockParams) error {
	for i := range r.products {
		if r.products[i].ID == params.ID {
			r.products[i].Stock = params.Stock
			r.products[i].UpdatedAt = params.UpdatedAt
			return nil
		}
	}
	return apperr.NotFoundErr
}

func (r *fakeProductRepo) ListProducts(context.Context, repository.ListProductsParams) ([]model.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) CountProducts(context.Context, repository.ProductFilter) (int, error) {
	return len(r.products), nil
}

type fakeOrderRepo struct {
	orders []model.Order
}

func (r *fakeOrderRepo) WithDB(db.DB) repository.OrderRepository { return r }

func (r *fakeOrderRepo) CreateOrder(_ context.Context, o model.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) ListOrders(context.Context, repository.ListOrdersParams) ([]model.Order, error) {
	return r.orders, nil
}

func (r *fakeOrderRepo) CountOrders(context.Context, repository.OrderFilter) (int, error) {
	return len(r.orders), nil
}

func (r *fakeOrderRepo) SumTotalAmount(context.Context, repository.OrderFilter) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range r.orders {
		sum = sum.Add(o.TotalAmount)
	}
	return sum, nil
}

type fakeOutboxMsgRepo struct {
	msgs []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxMsgRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxMsgRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxMsgRepo) ListUnprocessedOutboxMsgs(context.Context, int32) ([]repository.OutboxMsg, error) {
	return nil, nil
}

func (r *fakeOutboxMsgRepo) MarkOutboxMsgsProcessed(context.Context, []repository.ProcessedOutboxMsg) error {
	return nil
}

func newProduct(name, price string, stock int) model.Product {
	return model.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
}
