package campusclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GenericErrorMessage is used when a failed response carries no parseable
// error message.
const GenericErrorMessage = "Something went wrong. Please try again."

// Application error codes callers commonly branch on. The server's code
// table is larger; these are the ones with distinct client behavior.
const (
	CodeInvalidCredentials      = 2005
	CodeAccountNotVerified      = 2006
	CodeVerificationCodeInvalid = 2007
	CodeAlreadyVerified         = 2009
	CodeUnauthorized            = 2011
	CodeForbiddenRole           = 2012
)

// APIError is a failed API response. Status is the HTTP status, Code the
// application error code when the server provided one, and Message the
// user-facing text.
type APIError struct {
	Status  int
	Code    int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error (HTTP %d, code %d): %s", e.Status, e.Code, e.Message)
}

// AsAPIError unwraps err into an *APIError, or nil if it is not one.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// parseErrorResponse turns a non-2xx response body into an *APIError,
// extracting the server's message when the body follows the standard
// envelope and falling back to a generic message otherwise.
func parseErrorResponse(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Message: GenericErrorMessage,
	}

	var envelope struct {
		Code  int    `json:"code"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Code = envelope.Code
		if envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
	}

	return apiErr
}

// transportError wraps failures that never reached the server, keeping them
// distinguishable from *APIError responses.
func transportError(err error) error {
	return fmt.Errorf("request failed: %w", err)
}
