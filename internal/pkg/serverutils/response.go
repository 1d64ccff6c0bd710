package serverutils

// BaseResponse is the envelope used for error replies. Successful replies
// return their payload bare so the endpoint contracts stay flat.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func ErrorResponse(code int, message string) BaseResponse[interface{}] {
	return BaseResponse[interface{}]{
		Success: false,
		Code:    code,
		Message: message,
	}
}
