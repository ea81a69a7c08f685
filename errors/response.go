package errors

// ErrorResponse is the wire shape callers use when serializing a classified
// error back to their own clients.
type ErrorResponse struct {
	Code    int     `json:"code"`
	MsgID   string  `json:"msgid"`
	Message string  `json:"message"`
	Details Context `json:"details,omitempty"`
}

// ToResponse converts the error to its wire shape.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{
		Code:    e.Kind.Code,
		MsgID:   e.Kind.MsgID,
		Message: e.Message,
		Details: e.Details,
	}
}
