package response

// Response represents the standard API envelope returned by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Filters *Filters    `json:"filters,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Filters echoes the search criteria that were applied.
// Absent criteria serialize as null so callers can tell them apart from empty strings.
type Filters struct {
	Date     *string `json:"date"`
	City     *string `json:"city"`
	Category *string `json:"category"`
}

// NewFilters builds a filter echo, treating empty values as absent
func NewFilters(date, city, category string) *Filters {
	return &Filters{
		Date:     optional(date),
		City:     optional(city),
		Category: optional(category),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// --- Failure messages ---

const (
	MessageNotFound         = "Requested resource not found"
	MessageEventNotFound    = "Event not found"
	MessageServerError      = "Server error"
	MessageInternalError    = "Internal server error"
	MessageServiceUnhealthy = "Service unavailable"
)

// --- Response Builders ---

// Success creates a success response wrapping a single record
func Success(data interface{}) *Response {
	return &Response{
		Success: true,
		Data:    data,
	}
}

// List creates a success response for a list-shaped result with its row count
func List(data interface{}, count int) *Response {
	return &Response{
		Success: true,
		Count:   &count,
		Data:    data,
	}
}

// Search creates a list response that also echoes the applied filters
func Search(data interface{}, count int, filters *Filters) *Response {
	if filters == nil {
		filters = &Filters{}
	}
	return &Response{
		Success: true,
		Count:   &count,
		Filters: filters,
		Data:    data,
	}
}

// Error creates a failure response
func Error(message string) *Response {
	return &Response{
		Success: false,
		Message: message,
	}
}

// ErrorWithDetail creates a failure response carrying diagnostic detail
func ErrorWithDetail(message, detail string) *Response {
	return &Response{
		Success: false,
		Message: message,
		Error:   detail,
	}
}

// --- Common Error Responses ---

// NotFound creates a not found error response
func NotFound(message string) *Response {
	if message == "" {
		message = MessageNotFound
	}
	return Error(message)
}

// ServerError creates the response for a failed data-store operation.
// detail is omitted from the payload when empty.
func ServerError(detail string) *Response {
	return ErrorWithDetail(MessageServerError, detail)
}

// InternalError creates the response for an unhandled fault
func InternalError(detail string) *Response {
	return ErrorWithDetail(MessageInternalError, detail)
}

// ServiceUnavailable creates a service unavailable error response
func ServiceUnavailable(message string) *Response {
	if message == "" {
		message = MessageServiceUnhealthy
	}
	return Error(message)
}
