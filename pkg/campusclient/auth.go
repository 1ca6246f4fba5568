package campusclient

import (
	"context"
	"net/http"
)

// LoginRequest carries credentials plus the role to log into. The same email
// may exist once per role.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// LoginResult is a successful login: the session token and the account.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Login exchanges credentials for a session token. It does not install the
// token on the client; that is the session guard's decision.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterRequest creates an account. University applies to students,
// CompanyName to companies.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	UserType    string `json:"userType"`
	Name        string `json:"name,omitempty"`
	University  string `json:"university,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

// RegisterResult is a successful registration. No session token is issued;
// the account must verify first.
type RegisterResult struct {
	User              *User  `json:"user"`
	VerificationToken string `json:"verificationToken"`
}

// Register creates a new unverified account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	var result RegisterResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyCodeRequest redeems the emailed 6-digit code.
type VerifyCodeRequest struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Code     string `json:"code"`
}

// VerifyResult carries the freshly verified account.
type VerifyResult struct {
	User *User `json:"user"`
}

// VerifyCode marks the account verified using the emailed code.
func (c *Client) VerifyCode(ctx context.Context, req VerifyCodeRequest) (*VerifyResult, error) {
	var result VerifyResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify-code", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyToken marks the account verified using the verification-link token
// from registration.
func (c *Client) VerifyToken(ctx context.Context, token string) (*VerifyResult, error) {
	var result VerifyResult
	req := map[string]string{"token": token}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify-token", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResendCode asks the server to issue a fresh verification code.
func (c *Client) ResendCode(ctx context.Context, email, userType string) error {
	req := map[string]string{"email": email, "userType": userType}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/resend-code", req, nil)
}
