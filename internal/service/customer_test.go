package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/graphql-crm/internal/event"
	"github.com/tuanvumaihuynh/graphql-crm/internal/model"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/internal/validation"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/ptr"
)

func newTestCustomerService(customers *fakeCustomerRepo, outbox *fakeOutboxMsgRepo) *customerService {
	return NewCustomerService(discardLogger, &fakeDB{}, customers, outbox).(*customerService)
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	customers := &fakeCustomerRepo{}
	outbox := &fakeOutboxMsgRepo{}
	svc := newTestCustomerService(customers, outbox)

	res, err := svc.CreateCustomer(context.Background(), CreateCustomerParams{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: ptr.New("+1234567890"),
	})
	require.NoError(t, err)

	require.NotNil(t, res.Customer)
	assert.Empty(t, res.Errors)
	assert.Equal(t, MsgCustomerCreated, res.Message)
	assert.Equal(t, "alice@example.com", res.Customer.Email)
	assert.False(t, res.Customer.CreatedAt.IsZero())
	assert.Len(t, customers.customers, 1)

	require.Len(t, outbox.msgs, 1)
	assert.Equal(t, event.TopicCustomerCreated, outbox.msgs[0].Topic)
	assert.Equal(t, res.Customer.ID.String(), *outbox.msgs[0].PartitionKey)
}

func TestCustomerService_CreateCustomer_DuplicateEmail(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []model.Customer{{Email: "alice@example.com"}}}
	outbox := &fakeOutboxMsgRepo{}
	svc := newTestCustomerService(customers, outbox)

	res, err := svc.CreateCustomer(context.Background(), CreateCustomerParams{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	assert.Nil(t, res.Customer)
	assert.Equal(t, []string{validation.MsgEmailExists}, res.Errors)
	assert.Len(t, customers.customers, 1)
	assert.Empty(t, outbox.msgs)
}

func TestCustomerService_CreateCustomer_PaddedDuplicateEmail(t *testing.T) {
	customers := &fakeCustomerRepo{customers: []model.Customer{{Email: "alice@example.com"}}}
	outbox := &fakeOutboxMsgRepo{}
	svc := newTestCustomerService(customers, outbox)

	for _, email := range []string{" alice@example.com", "alice@example.com\n"} {
		res, err := svc.CreateCustomer(context.Background(), CreateCustomerParams{Name: "Alice", Email: email})
		require.NoError(t, err)

		assert.Nil(t, res.Customer)
		assert.Equal(t, []string{validation.MsgInvalidEmail}, res.Errors)
	}

	assert.Len(t, customers.customers, 1)
	assert.Empty(t, outbox.msgs)
}

func TestCustomerService_CreateCustomer_AccumulatesErrors(t *testing.T) {
	svc := newTestCustomerService(&fakeCustomerRepo{}, &fakeOutboxMsgRepo{})

	res, err := svc.CreateCustomer(context.Background(), CreateCustomerParams{
		Name:  "Bob",
		Email: "not-an-email",
		Phone: ptr.New("12345"),
	})
	require.NoError(t, err)

	assert.Nil(t, res.Customer)
	assert.Equal(t, []string{validation.MsgInvalidEmail, validation.MsgInvalidPhone}, res.Errors)
}

func TestCustomerService_CreateCustomer_EmptyPhoneIsOmitted(t *testing.T) {
	svc := newTestCustomerService(&fakeCustomerRepo{}, &fakeOutboxMsgRepo{})

	res, err := svc.CreateCustomer(context.Background(), CreateCustomerParams{
		Name:  "Carol",
		Email: "carol@example.com",
		Phone: ptr.New(""),
	})
	require.NoError(t, err)

	require.NotNil(t, res.Customer)
	assert.Nil(t, res.Customer.Phone)
}

func TestCustomerService_CreateCustomer_UniqueViolationOnInsert(t *testing.T) {
	customers := &fakeCustomerRepo{createErr: &pgconn.PgError{
		Code:           "23505",
		ConstraintName: repository.CustomerEmailConstraint,
	}}
	svc := newTestCustomerService(customers, &fakeOutboxMsgRepo{})

	res, err := svc.CreateCustomer(context.Background(), CreateCustomerParams{Name: "Dan", Email: "dan@example.com"})
	require.NoError(t, err)

	assert.Nil(t, res.Customer)
	assert.Equal(t, []string{validation.MsgEmailExists}, res.Errors)
}

func TestCustomerService_BulkCreateCustomers(t *testing.T) {
	customers := &fakeCustomerRepo{}
	fdb := &fakeDB{}
	svc := NewCustomerService(discardLogger, fdb, customers, &fakeOutboxMsgRepo{})

	res, err := svc.BulkCreateCustomers(context.Background(), []CreateCustomerParams{
		{Name: "One", Email: "one@example.com"},
		{Name: "Two", Email: "two-at-example.com"},
		{Name: "Three", Email: "three@example.com", Phone: ptr.New("555-123-4567")},
	})
	require.NoError(t, err)

	require.Len(t, res.Customers, 2)
	assert.Equal(t, "One", res.Customers[0].Name)
	assert.Equal(t, "Three", res.Customers[1].Name)
	assert.Equal(t, []string{"Row 2: Invalid email format."}, res.Errors)
	assert.Len(t, customers.customers, 2)
	assert.Equal(t, 2, fdb.txCount)
}

func TestCustomerService_BulkCreateCustomers_StorageFailureKeepsOtherRows(t *testing.T) {
	customers := &fakeCustomerRepo{failEmails: map[string]error{
		"two@example.com": errors.New("connection reset by peer"),
	}}
	outbox := &fakeOutboxMsgRepo{}
	svc := newTestCustomerService(customers, outbox)

	res, err := svc.BulkCreateCustomers(context.Background(), []CreateCustomerParams{
		{Name: "One", Email: "one@example.com"},
		{Name: "Two", Email: "two@example.com"},
		{Name: "Three", Email: "three@example.com"},
	})
	require.NoError(t, err)

	require.Len(t, res.Customers, 2)
	assert.Equal(t, "One", res.Customers[0].Name)
	assert.Equal(t, "Three", res.Customers[1].Name)
	assert.Equal(t, []string{"Row 2: " + MsgRowNotSaved}, res.Errors)
	assert.Len(t, customers.customers, 2)
	assert.Len(t, outbox.msgs, 2)
}

func TestCustomerService_BulkCreateCustomers_DuplicateWithinBatch(t *testing.T) {
	svc := newTestCustomerService(&fakeCustomerRepo{}, &fakeOutboxMsgRepo{})

	res, err := svc.BulkCreateCustomers(context.Background(), []CreateCustomerParams{
		{Name: "One", Email: "same@example.com"},
		{Name: "Two", Email: "same@example.com", Phone: ptr.New("123")},
	})
	require.NoError(t, err)

	assert.Len(t, res.Customers, 1)
	assert.Equal(t, []string{"Row 2: Email already exists., Invalid phone format."}, res.Errors)
}

func TestCustomerService_BulkCreateCustomers_NoErrorsIsEmptySlice(t *testing.T) {
	svc := newTestCustomerService(&fakeCustomerRepo{}, &fakeOutboxMsgRepo{})

	res, err := svc.BulkCreateCustomers(context.Background(), []CreateCustomerParams{
		{Name: "One", Email: "one@example.com"},
	})
	require.NoError(t, err)

	assert.NotNil(t, res.Errors)
	assert.Empty(t, res.Errors)
}
