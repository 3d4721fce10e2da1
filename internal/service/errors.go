package service

// ErrorCode is the stable machine-readable identifier of a workflow failure.
type ErrorCode string

const (
	CodeInvalidData        ErrorCode = "INVALID_DATA"
	CodeDriverNotFound     ErrorCode = "DRIVER_NOT_FOUND"
	CodeNoDriversAvailable ErrorCode = "NO_DRIVERS_AVAILABLE"
	CodeInvalidDistance    ErrorCode = "INVALID_DISTANCE"
	CodeNoRidesFound       ErrorCode = "NO_RIDES_FOUND"
	CodeRideNotFound       ErrorCode = "NOT_FOUND"
	CodeRideCompleted      ErrorCode = "RIDE_ALREADY_COMPLETED"
	CodeProviderDenied     ErrorCode = "ROUTE_PROVIDER_DENIED"
	CodeProviderFailure    ErrorCode = "ROUTE_PROVIDER_ERROR"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Error is a workflow error carrying a stable code and a human-readable
// description. The pair is the only contract surfaced to callers; internal
// diagnostic detail stays in the logs.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches two workflow errors by code, so tests and the transport layer
// can use errors.Is with a bare &Error{Code: ...} target.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func newError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func invalidData(message string) *Error {
	return newError(CodeInvalidData, message)
}
