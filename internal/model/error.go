package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeCategoryNotFound     = "CATEGORY_NOT_FOUND"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeTagNotFound          = "TAG_NOT_FOUND"
	ErrCodeReferentialViolation = "REFERENTIAL_VIOLATION"
	ErrCodeDuplicateAssociation = "DUPLICATE_ASSOCIATION"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCategoryNotFound = NewDomainError(ErrCodeCategoryNotFound, "No category found with this id")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "No product found with this id")
	ErrTagNotFound      = NewDomainError(ErrCodeTagNotFound, "No tag found with this id")

	// ErrReferentialViolation covers writes that reference a missing row,
	// e.g. a product_tags insert for a tag id that does not exist.
	ErrReferentialViolation = NewDomainError(ErrCodeReferentialViolation, "Write violates a foreign key constraint")

	// ErrDuplicateAssociation covers violations of the unique
	// (product_id, tag_id) pair constraint. The constraint is the backstop
	// behind the reconciler's own duplicate prevention.
	ErrDuplicateAssociation = NewDomainError(ErrCodeDuplicateAssociation, "Product and tag are already associated")
)
