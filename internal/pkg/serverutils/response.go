package serverutils

// Response is the success envelope of every JSON endpoint.
type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ErrorBody is the failure envelope. UpgradeRequired is set on tier refusals.
type ErrorBody struct {
	Success         bool   `json:"success"`
	Code            int    `json:"code"`
	ErrorCode       string `json:"error_code,omitempty"`
	Message         string `json:"message"`
	Details         string `json:"details,omitempty"`
	UpgradeRequired bool   `json:"upgradeRequired,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ErrorBody {
	return ErrorBody{
		Success: false,
		Code:    code,
		Message: message,
	}
}
