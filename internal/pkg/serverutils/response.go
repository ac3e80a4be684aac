package serverutils

// ApiError is a business-level failure the client is expected to
// branch on. It travels inside the envelope with HTTP 200, unlike
// transport failures which use HTTP status codes.
type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(code, message string) *ApiError {
	return &ApiError{Code: code, Message: message}
}

type Response[T any] struct {
	Data  *T        `json:"data"`
	Error *ApiError `json:"error"`
}

func SuccessResponse[T any](data T) Response[T] {
	return Response[T]{Data: &data}
}

func ErrorResponse(code, message string) Response[any] {
	return Response[any]{Error: NewApiError(code, message)}
}

func ApiErrorResponse(err *ApiError) Response[any] {
	return Response[any]{Error: err}
}
