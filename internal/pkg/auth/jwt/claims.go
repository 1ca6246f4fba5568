package jwt

import "github.com/golang-jwt/jwt"

// Token purposes. Session tokens authenticate API calls; verification tokens
// are only good for the email verification endpoint.
const (
	PurposeSession = "session"
	PurposeVerify  = "verify"
)

// Payload defines the JWT claims issued by the CampusCraft server.
// It embeds the standard claims plus the identity fields authorization
// decisions depend on.
type Payload struct {
	// StandardClaims embeds Exp, Iat, and Iss, which drive token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the account identifier of the token holder.
	ID string `json:"id"`

	// Email is the account email, carried for logging and verification flows.
	Email string `json:"email"`

	// UserType is the account role, "student" or "company". Fixed at
	// registration, so it is safe to embed in the token.
	UserType string `json:"user_type"`

	// Purpose distinguishes session tokens from verification-link tokens.
	Purpose string `json:"purpose"`
}
