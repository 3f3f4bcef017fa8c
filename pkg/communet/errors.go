package communet

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RequestError represents a non-2xx response from the community API after any
// retries were exhausted. Method distinguishes the verb-specific variants
// (GET, POST, PUT, DELETE).
type RequestError struct {
	Method           string
	StatusCode       int
	Message          string
	DeveloperMessage string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	msg := ConsolidateErrors(e.Message, e.DeveloperMessage)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("%s request failed with status %d: %s", e.Method, e.StatusCode, msg)
}

// NewGetError returns the GET variant of RequestError.
func NewGetError(statusCode int, message, developerMessage string) *RequestError {
	return &RequestError{Method: http.MethodGet, StatusCode: statusCode, Message: message, DeveloperMessage: developerMessage}
}

// NewPostError returns the POST variant of RequestError.
func NewPostError(statusCode int, message, developerMessage string) *RequestError {
	return &RequestError{Method: http.MethodPost, StatusCode: statusCode, Message: message, DeveloperMessage: developerMessage}
}

// NewPutError returns the PUT variant of RequestError.
func NewPutError(statusCode int, message, developerMessage string) *RequestError {
	return &RequestError{Method: http.MethodPut, StatusCode: statusCode, Message: message, DeveloperMessage: developerMessage}
}

// NewDeleteError returns the DELETE variant of RequestError.
func NewDeleteError(statusCode int, message, developerMessage string) *RequestError {
	return &RequestError{Method: http.MethodDelete, StatusCode: statusCode, Message: message, DeveloperMessage: developerMessage}
}

// ConnectionError represents a transport-level failure (connection refused,
// DNS failure, timeout) that persisted through every retry attempt.
type ConnectionError struct {
	Attempts int
	LastErr  error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed after %d attempt(s): %v", e.Attempts, e.LastErr)
}

// Unwrap exposes the underlying transport error.
func (e *ConnectionError) Unwrap() error {
	return e.LastErr
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired          = errors.New("config is required")
	ErrCommunityURLRequired    = errors.New("community URL is required")
	ErrInvalidCommunityURL     = errors.New("community URL must use http or https")
	ErrNoCredentials           = errors.New("no credentials configured")
	ErrSessionKeyNotReturned   = errors.New("session login response did not contain a key")
	ErrNodeRefUnresolvable     = errors.New("node reference cannot be resolved to an ID")
	ErrEmptyCollection         = errors.New("node collection has no id field")
	ErrUnsupportedValueType    = errors.New("unsupported v1 value type")
	ErrMalformedV1Response     = errors.New("malformed v1 response")
	ErrQueryCollectionRequired = errors.New("query collection is required")
	ErrStaticTokenNoRefresh    = errors.New("static token cannot be refreshed")
)

// IsNotFound checks whether the error is a 404 request error.
func IsNotFound(err error) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks whether the error is a 401 request error.
func IsUnauthorized(err error) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsForbidden checks whether the error is a 403 request error.
func IsForbidden(err error) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusForbidden
	}

	return false
}

// IsConnectionError checks whether the error is a transport-level failure.
func IsConnectionError(err error) bool {
	connErr := &ConnectionError{}

	return errors.As(err, &connErr)
}

// ConsolidateErrors merges the platform's message and developer_message
// fields into one string. Identical or one-sided pairs collapse to the single
// representative message; differing pairs are joined.
func ConsolidateErrors(message, developerMessage string) string {
	switch {
	case message == "" && developerMessage == "":
		return ""
	case message == "":
		return developerMessage
	case developerMessage == "" || message == developerMessage:
		return message
	default:
		return message + " - " + developerMessage
	}
}

// errorTranslations maps recognizable platform error signatures to more
// actionable messages. Matching is by substring; translation only ever
// rewrites the text, never the status or HTTP code.
var errorTranslations = map[string]string{
	"User authentication failed.":                          "Invalid credentials or the account is locked; confirm the username and password and that API access is enabled for the account.",
	"Anonymous user is not allowed to perform this action": "The request was sent without a valid session; authenticate before calling this endpoint.",
	"Insufficient privileges for this operation":           "The authenticated account lacks the community role required for this operation.",
	"The file type is not supported":                       "The attachment extension is not in the community's allowed file-type list.",
}

// TranslateErrorMessage substitutes a more specific message when one of the
// known platform error signatures is recognized. Unrecognized messages are
// returned unchanged; translation is never an error condition.
func TranslateErrorMessage(message string) string {
	for signature, translated := range errorTranslations {
		if strings.Contains(message, signature) {
			return translated
		}
	}

	return message
}
