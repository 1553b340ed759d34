// Package graphql exposes the CRM services as a GraphQL schema.
package graphql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.appointy.com/jaal"
	jaalgraphql "go.appointy.com/jaal/graphql"
	"go.appointy.com/jaal/introspection"
	"go.appointy.com/jaal/schemabuilder"

	"github.com/tuanvumaihuynh/graphql-crm/internal/service"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/zerror"
)

const helloMessage = "Hello, GraphQL!"

// Resolver wires GraphQL operations to the CRM services.
type Resolver struct {
	logger      *slog.Logger
	customerSvc service.CustomerService
	productSvc  service.ProductService
	orderSvc    service.OrderService
}

func NewResolver(
	logger *slog.Logger,
	customerSvc service.CustomerService,
	productSvc service.ProductService,
	orderSvc service.OrderService,
) *Resolver {
	return &Resolver{
		logger:      logger.With(slog.String("service", "graphql")),
		customerSvc: customerSvc,
		productSvc:  productSvc,
		orderSvc:    orderSvc,
	}
}

// RegisterSchema registers every object, input and operation on sb.
func (r *Resolver) RegisterSchema(sb *schemabuilder.Schema) {
	registerPageInfo(sb)
	r.registerObjects(sb)
	registerInputs(sb)
	registerPayloads(sb)

	r.registerQuery(sb)
	r.registerMutation(sb)
}

// NewSchema builds the executable schema, optionally with introspection.
func NewSchema(r *Resolver, withIntrospection bool) (*jaalgraphql.Schema, error) {
	sb := schemabuilder.NewSchema()
	r.RegisterSchema(sb)

	schema, err := sb.Build()
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	if withIntrospection {
		introspection.AddIntrospectionToSchema(schema)
	}

	return schema, nil
}

// Handler serves schema for POST {"query", "variables"} requests.
func Handler(schema *jaalgraphql.Schema) http.Handler {
	return jaal.HTTPHandler(schema)
}

// publicError hides collaborator failures from clients. Domain errors keep
// their message; anything else is logged and replaced.
func (r *Resolver) publicError(ctx context.Context, op string, err error) error {
	var zErr zerror.ZError
	if errors.As(err, &zErr) && zErr.Status() != zerror.StatusInternalServerError {
		return errors.New(zErr.Msg())
	}

	r.logger.ErrorContext(ctx, "graphql operation failed",
		slog.String("operation", op),
		slog.Any("error", err),
	)
	return errors.New("internal server error")
}
