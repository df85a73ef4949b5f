// Package errors provides structured domain errors with stable codes.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog validation errors
	CodeSlugInvalid        Code = "SLUG_INVALID"
	CodeToolNameEmpty      Code = "TOOL_NAME_EMPTY"
	CodeToolURLInvalid     Code = "TOOL_URL_INVALID"
	CodeToolCategoryEmpty  Code = "TOOL_CATEGORY_EMPTY"
	CodeToolPricingInvalid Code = "TOOL_PRICING_INVALID"
	CodeCategoryNameEmpty  Code = "CATEGORY_NAME_EMPTY"
	CodeWorkflowStepsEmpty Code = "WORKFLOW_STEPS_EMPTY"
	CodeFilterInvalid      Code = "FILTER_INVALID"

	// Rating errors
	CodeRatingOutOfRange   Code = "RATING_OUT_OF_RANGE"
	CodeRatingVisitorEmpty Code = "RATING_VISITOR_EMPTY"

	// Comparison errors
	CodeCompareTooFew  Code = "COMPARE_TOO_FEW"
	CodeCompareTooMany Code = "COMPARE_TOO_MANY"

	// Auth errors
	CodeAuthInvalidCredentials Code = "AUTH_INVALID_CREDENTIALS"
	CodeAuthSessionInvalid     Code = "AUTH_SESSION_INVALID"
	CodeAuthSessionExpired     Code = "AUTH_SESSION_EXPIRED"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// Static export
	CodeDisabledInExport Code = "DISABLED_IN_EXPORT"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeSlugInvalid,
		CodeToolNameEmpty,
		CodeToolURLInvalid,
		CodeToolCategoryEmpty,
		CodeToolPricingInvalid,
		CodeCategoryNameEmpty,
		CodeWorkflowStepsEmpty,
		CodeFilterInvalid,
		CodeRatingOutOfRange,
		CodeRatingVisitorEmpty,
		CodeCompareTooFew,
		CodeCompareTooMany:
		return http.StatusBadRequest
	case CodeAuthInvalidCredentials,
		CodeAuthSessionInvalid,
		CodeAuthSessionExpired:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeDisabledInExport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MessageKey returns the catalog key used for user-facing copy.
func (c Code) MessageKey() string {
	return "error." + string(c)
}
