package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/graphql-crm/internal/event"
	"github.com/tuanvumaihuynh/graphql-crm/internal/model"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
	"github.com/tuanvumaihuynh/graphql-crm/internal/validation"
)

const (
	MsgCustomerCreated = "Customer created successfully."
	MsgRowNotSaved     = "Could not save customer."
)

type CreateCustomerParams struct {
	Name  string
	Email string
	Phone *string
}

// CreateCustomerResult holds either the created customer or the reasons it was rejected.
type CreateCustomerResult struct {
	Customer *model.Customer
	Message  string
	Errors   []string
}

// BulkCreateCustomersResult lists every created customer and one
// "Row N: ..." entry per rejected row. Errors is never nil.
type BulkCreateCustomersResult struct {
	Customers []model.Customer
	Errors    []string
}

type ListCustomersResult struct {
	Customers  []model.Customer
	TotalCount int
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (CreateCustomerResult, error)
	BulkCreateCustomers(ctx context.Context, params []CreateCustomerParams) (BulkCreateCustomersResult, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error)
	ListCustomers(ctx context.Context, params repository.ListCustomersParams) (ListCustomersResult, error)
}

type customerService struct {
	logger        *slog.Logger
	db            db.DB
	customerRepo  repository.CustomerRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewCustomerService(
	logger *slog.Logger,
	db db.DB,
	customerRepo repository.CustomerRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) CustomerService {
	return &customerService{
		logger:        logger.With(slog.String("service", "customer")),
		db:            db,
		customerRepo:  customerRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, params CreateCustomerParams) (CreateCustomerResult, error) {
	customer, errs, err := s.createCustomer(ctx, params)
	if err != nil {
		return CreateCustomerResult{}, err
	}
	if len(errs) > 0 {
		return CreateCustomerResult{Errors: errs}, nil
	}

	return CreateCustomerResult{
		Customer: &customer,
		Message:  MsgCustomerCreated,
	}, nil
}

func (s *customerService) BulkCreateCustomers(ctx context.Context, params []CreateCustomerParams) (BulkCreateCustomersResult, error) {
	result := BulkCreateCustomersResult{
		Customers: make([]model.Customer, 0, len(params)),
		Errors:    []string{},
	}

	for i, p := range params {
		customer, errs, err := s.createCustomer(ctx, p)
		if err != nil {
			// Earlier rows are already committed, so the batch carries on.
			s.logger.ErrorContext(ctx, "bulk create customer row",
				slog.Int("row", i+1),
				slog.Any("error", err),
			)
			errs = []string{MsgRowNotSaved}
		}
		if len(errs) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", i+1, strings.Join(errs, ", ")))
			continue
		}
		result.Customers = append(result.Customers, customer)
	}

	s.logger.InfoContext(ctx, "bulk create customers",
		slog.Int("created", len(result.Customers)),
		slog.Int("rejected", len(result.Errors)),
	)

	return result, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (model.Customer, error) {
	customer, err := s.customerRepo.GetCustomer(ctx, id)
	if err != nil {
		return model.Customer{}, fmt.Errorf("customer repository get customer: %w", err)
	}

	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context, params repository.ListCustomersParams) (ListCustomersResult, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, params)
	if err != nil {
		return ListCustomersResult{}, fmt.Errorf("customer repository list customers: %w", err)
	}

	count, err := s.customerRepo.CountCustomers(ctx, params.Filter)
	if err != nil {
		return ListCustomersResult{}, fmt.Errorf("customer repository count customers: %w", err)
	}

	return ListCustomersResult{Customers: customers, TotalCount: count}, nil
}

// createCustomer validates and persists one customer in its own transaction.
// Field errors are returned as messages; err is reserved for storage failures.
func (s *customerService) createCustomer(ctx context.Context, params CreateCustomerParams) (model.Customer, []string, error) {
	errs := validation.EmailFormat(params.Email)

	emailErrs, err := validation.UniqueEmail(ctx, s.customerRepo, params.Email)
	if err != nil {
		return model.Customer{}, nil, fmt.Errorf("validate unique email: %w", err)
	}
	errs = append(errs, emailErrs...)

	if params.Phone != nil {
		errs = append(errs, validation.PhoneFormat(*params.Phone)...)
	}

	if len(errs) > 0 {
		return model.Customer{}, errs, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Customer{}, nil, fmt.Errorf("generate uuid v7: %w", err)
	}

	customer := model.Customer{
		ID:        id,
		Name:      params.Name,
		Email:     params.Email,
		Phone:     params.Phone,
		CreatedAt: time.Now(),
	}
	if customer.Phone != nil && *customer.Phone == "" {
		customer.Phone = nil
	}

	msg, err := newOutboxMsg(ctx, event.TopicCustomerCreated, customer.ID.String(), event.CustomerCreatedEvent{
		CustomerID: customer.ID.String(),
		Name:       customer.Name,
		Email:      customer.Email,
		Phone:      customer.Phone,
	})
	if err != nil {
		return model.Customer{}, nil, err
	}

	err = s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.customerRepo.
			WithDB(db).
			CreateCustomer(ctx, customer); err != nil {
			return fmt.Errorf("customer repository create customer: %w", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	})
	if db.IsUniqueViolation(err, repository.CustomerEmailConstraint) {
		return model.Customer{}, []string{validation.MsgEmailExists}, nil
	}
	if err != nil {
		return model.Customer{}, nil, fmt.Errorf("db with tx: %w", err)
	}

	s.logger.InfoContext(ctx, "customer created", slog.String("customer_id", customer.ID.String()))

	return customer, nil, nil
}
