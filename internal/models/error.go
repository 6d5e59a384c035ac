package models

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeClientNotFound   = "CLIENT_NOT_FOUND"
	ErrCodeDocumentNotFound = "DOCUMENT_NOT_FOUND"
	ErrCodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	ErrCodeSessionNotFound  = "SESSION_NOT_FOUND"
	ErrCodeUnknownCatalog   = "UNKNOWN_AREA_OR_PIECE"
	ErrCodeAIBackendDown    = "AI_BACKEND_UNAVAILABLE"
)
