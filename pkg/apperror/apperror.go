package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")

	// Portfolio persistence and asset lifecycle taxonomy. All three are
	// recoverable: the caller keeps its local state and may retry.
	ErrFetch       = errors.New("portfolio fetch failed")
	ErrPersist     = errors.New("section save failed")
	ErrAssetUpload = errors.New("asset upload failed")
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return NewAppError(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return NewAppError(ErrUnauthorized, "Invalid credentials", details, err)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

// NewFetch wraps a document-store read failure. Callers fall back to the
// in-memory defaults and surface a non-fatal status.
func NewFetch(details string, err error) *AppError {
	return NewAppError(ErrFetch, "Could not load the portfolio", details, err)
}

// NewPersist wraps a document-store write failure. The edit buffer stays
// untouched so the save can simply be re-invoked.
func NewPersist(section, details string, err error) *AppError {
	msg := fmt.Sprintf("Could not save the %s section", section)
	return NewAppError(ErrPersist, msg, details, err)
}

// NewAssetUpload names the image that failed to become durable. The whole
// section save is aborted; nothing was written to the document store.
func NewAssetUpload(item string, err error) *AppError {
	details := fmt.Sprintf("upload of '%s' did not produce a durable URL", item)
	return NewAppError(ErrAssetUpload, "Image upload failed", details, err)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrFetch), errors.Is(err, ErrPersist), errors.Is(err, ErrAssetUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (e *AppError) ToJSON() gin.H {
	return gin.H{
		"error":   e.BaseError.Error(),
		"message": e.Message,
	}
}
