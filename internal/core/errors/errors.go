package errors

const (
	HttpInternalError          = "internal_error"
	HttpUnauthenticatedError   = "unauthenticated"
	HttpUnknownTenantError     = "unknown_tenant"
	HttpDeviceTimeoutError     = "device_timeout"
	HttpDeviceUnavailableError = "device_unavailable"
	HttpDeviceBadReplyError    = "device_bad_reply"
	HttpInvalidQueryError      = "invalid_query"
)

// ErrorResponse is the error response body for every API error.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
