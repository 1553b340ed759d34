package apperr

import "github.com/tuanvumaihuynh/graphql-crm/pkg/zerror"

const (
	InvalidOrderByErrorCode  = "INVALID_ORDER_BY"
	InvalidArgumentErrorCode = "INVALID_ARGUMENT"
	NotFoundErrorCode        = "NOT_FOUND"
	UnavailableErrorCode     = "UNAVAILABLE"
	InternalErrorCode        = "INTERNAL_ERROR"
)

var (
	InvalidOrderByErr  = zerror.NewBadRequest(InvalidOrderByErrorCode, "invalid order by field")
	InvalidArgumentErr = zerror.NewBadRequest(InvalidArgumentErrorCode, "invalid argument")
	NotFoundErr        = zerror.NewNotFound(NotFoundErrorCode, "record not found")
	UnavailableErr     = zerror.NewServiceUnavailable(UnavailableErrorCode, "service unavailable")
)
