package zerror

// Status is a transport-agnostic error category.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusBadRequest
	StatusValidationFailed
	StatusUnauthorized
	StatusForbidden
	StatusNotFound
	StatusConflict
	StatusUnprocessableEntity
	StatusTooManyRequests
	StatusInternalServerError
	StatusNotImplemented
	StatusBadGateway
	StatusServiceUnavailable
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusBadRequest:
		return "BAD_REQUEST"
	case StatusValidationFailed:
		return "VALIDATION_FAILED"
	case StatusUnauthorized:
		return "UNAUTHORIZED"
	case StatusForbidden:
		return "FORBIDDEN"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusConflict:
		return "CONFLICT"
	case StatusUnprocessableEntity:
		return "UNPROCESSABLE_ENTITY"
	case StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	case StatusNotImplemented:
		return "NOT_IMPLEMENTED"
	case StatusBadGateway:
		return "BAD_GATEWAY"
	case StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	case StatusTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}
