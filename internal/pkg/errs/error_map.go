/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value carries the user message and HTTP status.
// Codes without an explicit Status default to 400 Bad Request.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Account, Session, and Verification Errors
	ErrInvalidEmail:             {Code: ErrInvalidEmail, Message: "Invalid email address."},
	ErrInvalidPassword:          {Code: ErrInvalidPassword, Message: "Password must be between 6 and 72 characters."},
	ErrInvalidUserType:          {Code: ErrInvalidUserType, Message: "Account type must be student or company."},
	ErrUserAlreadyExists:        {Code: ErrUserAlreadyExists, Message: "An account with this email already exists.", Status: http.StatusConflict},
	ErrInvalidCredentials:       {Code: ErrInvalidCredentials, Message: "Incorrect email or password.", Status: http.StatusUnauthorized},
	ErrAccountNotVerified:       {Code: ErrAccountNotVerified, Message: "Account not verified. Please verify your email before logging in.", Status: http.StatusForbidden},
	ErrVerificationCodeInvalid:  {Code: ErrVerificationCodeInvalid, Message: "Invalid or expired verification code."},
	ErrVerificationTokenInvalid: {Code: ErrVerificationTokenInvalid, Message: "Invalid or expired verification link."},
	ErrAlreadyVerified:          {Code: ErrAlreadyVerified, Message: "This account is already verified.", Status: http.StatusConflict},
	ErrUserNotFound:             {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrUnauthorized:             {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrForbiddenRole:            {Code: ErrForbiddenRole, Message: "Your account type cannot access this resource.", Status: http.StatusForbidden},

	// 3xxx: Job and Application Errors
	ErrJobNotFound:              {Code: ErrJobNotFound, Message: "Job posting not found.", Status: http.StatusNotFound},
	ErrJobNotOwned:              {Code: ErrJobNotOwned, Message: "You can only modify your own job postings.", Status: http.StatusForbidden},
	ErrAlreadyApplied:           {Code: ErrAlreadyApplied, Message: "You have already applied to this job.", Status: http.StatusConflict},
	ErrApplicationNotFound:      {Code: ErrApplicationNotFound, Message: "Application not found.", Status: http.StatusNotFound},
	ErrInvalidApplicationStatus: {Code: ErrInvalidApplicationStatus, Message: "Invalid application status."},

	// 4xxx: Messaging and File Errors
	ErrConversationNotFound: {Code: ErrConversationNotFound, Message: "Conversation not found.", Status: http.StatusNotFound},
	ErrNotParticipant:       {Code: ErrNotParticipant, Message: "You are not part of this conversation.", Status: http.StatusForbidden},
	ErrMessageTooLong:       {Code: ErrMessageTooLong, Message: "Message is too long."},
	ErrFileSizeTooLarge:     {Code: ErrFileSizeTooLarge, Message: "File is too large."},
	ErrFileTypeInvalid:      {Code: ErrFileTypeInvalid, Message: "File type is not allowed."},
	ErrFileStorageFailed:    {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusBadGateway},

	// 5xxx: Internal System Errors
	ErrUnknown:              {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrAssistantUnavailable: {Code: ErrAssistantUnavailable, Message: "The assistant is unavailable right now.", Status: http.StatusBadGateway},
}
