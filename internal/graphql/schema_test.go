package graphql_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/graphql-crm/internal/graphql"
	"github.com/tuanvumaihuynh/graphql-crm/internal/model"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/internal/service"
)

type stubCustomerService struct {
	service.CustomerService
	CreateCustomerFunc func(ctx context.Context, params service.CreateCustomerParams) (service.CreateCustomerResult, error)
}

func (s stubCustomerService) CreateCustomer(ctx context.Context, params service.CreateCustomerParams) (service.CreateCustomerResult, error) {
	return s.CreateCustomerFunc(ctx, params)
}

type stubProductService struct {
	service.ProductService
	ListProductsFunc  func(ctx context.Context, params repository.ListProductsParams) (service.ListProductsResult, error)
	CreateProductFunc func(ctx context.Context, params service.CreateProductParams) (service.CreateProductResult, error)
}

func (s stubProductService) CreateProduct(ctx context.Context, params service.CreateProductParams) (service.CreateProductResult, error) {
	return s.CreateProductFunc(ctx, params)
}

func (s stubProductService) ListProducts(ctx context.Context, params repository.ListProductsParams) (service.ListProductsResult, error) {
	return s.ListProductsFunc(ctx, params)
}

type stubOrderService struct {
	service.OrderService
	CreateOrderFunc func(ctx context.Context, params service.CreateOrderParams) (service.CreateOrderResult, error)
}

func (s stubOrderService) CreateOrder(ctx context.Context, params service.CreateOrderParams) (service.CreateOrderResult, error) {
	return s.CreateOrderFunc(ctx, params)
}

type response struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []json.RawMessage          `json:"errors"`
}

func newServer(t *testing.T, cs service.CustomerService, ps service.ProductService, os service.OrderService) *httptest.Server {
	t.Helper()

	resolver := graphql.NewResolver(slog.New(slog.DiscardHandler), cs, ps, os)
	schema, err := graphql.NewSchema(resolver, true)
	require.NoError(t, err)

	srv := httptest.NewServer(graphql.Handler(schema))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, query string, variables map[string]any) response {
	t.Helper()

	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	require.NoError(t, err)

	resp, err := http.Post(srv.URL, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSchema_Hello(t *testing.T) {
	srv := newServer(t, stubCustomerService{}, stubProductService{}, stubOrderService{})

	res := post(t, srv, `{ hello }`, nil)

	assert.Empty(t, res.Errors)
	assert.JSONEq(t, `"Hello, GraphQL!"`, string(res.Data["hello"]))
}

func TestSchema_CreateCustomer(t *testing.T) {
	id := uuid.New()
	cs := stubCustomerService{
		CreateCustomerFunc: func(_ context.Context, params service.CreateCustomerParams) (service.CreateCustomerResult, error) {
			assert.Equal(t, "Alice", params.Name)
			assert.Nil(t, params.Phone)
			return service.CreateCustomerResult{
				Customer: &model.Customer{ID: id, Name: params.Name, Email: params.Email, CreatedAt: time.Now()},
				Message:  service.MsgCustomerCreated,
			}, nil
		},
	}
	srv := newServer(t, cs, stubProductService{}, stubOrderService{})

	res := post(t, srv, `mutation {
		createCustomer(input: {name: "Alice", email: "alice@example.com"}) {
			customer { id email }
			message
			errors
		}
	}`, nil)

	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{
		"customer": {"id": "`+id.String()+`", "email": "alice@example.com"},
		"message": "Customer created successfully.",
		"errors": []
	}`, string(res.Data["createCustomer"]))
}

func TestSchema_CreateOrder_Errors(t *testing.T) {
	os := stubOrderService{
		CreateOrderFunc: func(_ context.Context, params service.CreateOrderParams) (service.CreateOrderResult, error) {
			assert.Equal(t, []string{"1", "2"}, params.ProductIDs)
			return service.CreateOrderResult{Errors: []string{service.MsgCustomerNotFound}}, nil
		},
	}
	srv := newServer(t, stubCustomerService{}, stubProductService{}, os)

	res := post(t, srv, `mutation {
		createOrder(input: {customerId: "404", productIds: ["1", "2"]}) {
			order { id }
			errors
		}
	}`, nil)

	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{"order": null, "errors": ["Customer does not exist."]}`, string(res.Data["createOrder"]))
}

func TestSchema_AllProducts(t *testing.T) {
	ps := stubProductService{
		ListProductsFunc: func(_ context.Context, params repository.ListProductsParams) (service.ListProductsResult, error) {
			assert.Equal(t, "10", params.Filter.PriceGte.String())
			assert.Equal(t, "20", params.Filter.PriceLte.String())
			assert.Equal(t, []string{"-price"}, params.OrderBy)
			return service.ListProductsResult{
				Products: []model.Product{
					{ID: uuid.New(), Name: "Mouse", Price: decimal.RequireFromString("15.5"), Stock: 3},
				},
				TotalCount: 1,
			}, nil
		},
	}
	srv := newServer(t, stubCustomerService{}, ps, stubOrderService{})

	res := post(t, srv, `{
		allProducts(priceGte: "10", priceLte: "20", orderBy: ["-price"]) {
			totalCount
			edges { node { name price stock } }
			pageInfo { hasNextPage }
		}
	}`, nil)

	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{
		"totalCount": 1,
		"edges": [{"node": {"name": "Mouse", "price": "15.50", "stock": 3}}],
		"pageInfo": {"hasNextPage": false}
	}`, string(res.Data["allProducts"]))
}

func TestSchema_CreateProduct_ScalarFields(t *testing.T) {
	id := uuid.New()
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	ps := stubProductService{
		CreateProductFunc: func(_ context.Context, params service.CreateProductParams) (service.CreateProductResult, error) {
			require.NotNil(t, params.Price)
			assert.Equal(t, "49.9", params.Price.String())
			return service.CreateProductResult{Product: &model.Product{
				ID: id, Name: params.Name, Price: *params.Price, CreatedAt: created, UpdatedAt: created,
			}}, nil
		},
	}
	srv := newServer(t, stubCustomerService{}, ps, stubOrderService{})

	res := post(t, srv, `mutation {
		createProduct(input: {name: "Keyboard", price: "49.90"}) {
			product { price createdAt }
			errors
		}
	}`, nil)

	require.Empty(t, res.Errors)
	assert.JSONEq(t, `{
		"product": {"price": "49.90", "createdAt": "2025-06-01T08:00:00Z"},
		"errors": []
	}`, string(res.Data["createProduct"]))
}

func TestSchema_CreateProduct_InvalidDecimal(t *testing.T) {
	ps := stubProductService{
		CreateProductFunc: func(context.Context, service.CreateProductParams) (service.CreateProductResult, error) {
			t.Error("service must not be called with an invalid price")
			return service.CreateProductResult{}, nil
		},
	}
	srv := newServer(t, stubCustomerService{}, ps, stubOrderService{})

	res := post(t, srv, `mutation {
		createProduct(input: {name: "Keyboard", price: "cheap"}) { errors }
	}`, nil)

	require.NotEmpty(t, res.Errors)
	assert.Contains(t, string(res.Errors[0]), `invalid decimal`)
}

func TestSchema_RegistersCustomScalars(t *testing.T) {
	srv := newServer(t, stubCustomerService{}, stubProductService{}, stubOrderService{})

	res := post(t, srv, `{ __schema { types { name kind } } }`, nil)
	require.Empty(t, res.Errors)

	var schema struct {
		Types []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"types"`
	}
	require.NoError(t, json.Unmarshal(res.Data["__schema"], &schema))

	kinds := map[string]string{}
	for _, typ := range schema.Types {
		kinds[typ.Name] = typ.Kind
	}
	assert.Equal(t, "SCALAR", kinds["Decimal"])
	assert.Equal(t, "SCALAR", kinds["DateTime"])
}
