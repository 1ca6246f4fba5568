/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in responses to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1006
)

// 2xxx: Account, Session, and Verification Errors
const (
	// ErrInvalidEmail indicates a malformed email address.
	ErrInvalidEmail = 2001

	// ErrInvalidPassword indicates a password outside the accepted length range.
	ErrInvalidPassword = 2002

	// ErrInvalidUserType indicates a userType outside {student, company}.
	ErrInvalidUserType = 2003

	// ErrUserAlreadyExists indicates the email is already registered for that role.
	ErrUserAlreadyExists = 2004

	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = 2005

	// ErrAccountNotVerified indicates a login attempt against an unverified account.
	// Kept distinct from ErrInvalidCredentials so clients can route the user to
	// the verification flow instead of a generic failure screen.
	ErrAccountNotVerified = 2006

	// ErrVerificationCodeInvalid indicates a wrong or expired verification code.
	ErrVerificationCodeInvalid = 2007

	// ErrVerificationTokenInvalid indicates an invalid or expired verification link token.
	ErrVerificationTokenInvalid = 2008

	// ErrAlreadyVerified indicates a verification attempt for an account that is already verified.
	ErrAlreadyVerified = 2009

	// ErrUserNotFound indicates the referenced account does not exist.
	ErrUserNotFound = 2010

	// ErrUnauthorized indicates a missing or invalid session token.
	ErrUnauthorized = 2011

	// ErrForbiddenRole indicates the authenticated role is not allowed on this resource.
	ErrForbiddenRole = 2012
)

// 3xxx: Job and Application Errors
const (
	// ErrJobNotFound indicates the referenced job posting does not exist.
	ErrJobNotFound = 3001

	// ErrJobNotOwned indicates the company does not own the referenced job posting.
	ErrJobNotOwned = 3002

	// ErrAlreadyApplied indicates the student already applied to this job.
	ErrAlreadyApplied = 3003

	// ErrApplicationNotFound indicates the referenced application does not exist.
	ErrApplicationNotFound = 3004

	// ErrInvalidApplicationStatus indicates an unknown application status value.
	ErrInvalidApplicationStatus = 3005
)

// 4xxx: Messaging and File Errors
const (
	// ErrConversationNotFound indicates the referenced conversation does not exist.
	ErrConversationNotFound = 4001

	// ErrNotParticipant indicates the user is not a participant of the conversation.
	ErrNotParticipant = 4002

	// ErrMessageTooLong indicates the message body exceeded the maximum length.
	ErrMessageTooLong = 4003

	// ErrFileSizeTooLarge indicates an upload larger than the allowed maximum.
	ErrFileSizeTooLarge = 4004

	// ErrFileTypeInvalid indicates a file type outside the allowed set.
	ErrFileTypeInvalid = 4005

	// ErrFileStorageFailed indicates a failure talking to the object storage backend.
	ErrFileStorageFailed = 4006
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrAssistantUnavailable indicates the AI assistant backend failed or is not configured.
	ErrAssistantUnavailable = 5001
)
