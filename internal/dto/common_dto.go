package dto

// ErrorResponse is the uniform error payload. Code distinguishes terminal
// outcomes clients branch on (e.g. "already_completed") from generic failures.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

// Error codes surfaced to clients.
const (
	CodeValidation       = "validation"
	CodeNotFound         = "not_found"
	CodeAlreadyCompleted = "already_completed"
	CodeAtomicity        = "atomicity_failure"
	CodeInternal         = "internal"
)
