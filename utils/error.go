package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures so the HTTP layer can pick a status code.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
	KindForbidden
)

// AppError is the error type returned by services.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details []string
	// Payload is merged into the JSON error body (e.g. the conflicting record).
	Payload gin.H
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches on kind and message so sentinel AppErrors work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func NewValidationError(message string, details ...string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Details: details}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// NewInternalError wraps an unexpected failure. The cause is logged, never sent to clients.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

// HTTPStatus maps an error kind to its response status.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong!"})
			}
		}()
		c.Next()
	}
}

// RespondError writes err as a JSON error body. Non-AppErrors are treated as
// internal with fallback as the client-facing message.
func RespondError(c *gin.Context, err error, fallback string) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(fallback, err)
	}

	status := appErr.Kind.HTTPStatus()
	message := appErr.Message
	if appErr.Kind == KindInternal {
		GetLogger().Error(message,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()))
		if fallback != "" {
			message = fallback
		}
	} else {
		GetLogger().Debug("request rejected",
			zap.Int("status", status),
			zap.String("error", message),
			zap.Strings("details", appErr.Details))
	}

	body := gin.H{"error": message}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	for k, v := range appErr.Payload {
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
