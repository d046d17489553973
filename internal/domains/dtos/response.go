package dtos

// Response is the envelope every REST handler and hub event uses.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse(data any, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string, errs ...string) Response {
	return Response{
		Success: false,
		Message: message,
		Errors:  errs,
	}
}
