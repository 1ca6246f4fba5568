package sessionguard

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Bini-2002/campuscraft/pkg/campusclient"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validation errors raised before a registration request hits the wire.
var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPassword = errors.New("password must be between 6 and 72 characters")
	ErrMissingName     = errors.New("name is required")
)

// Registration is a role-specific signup payload. The two implementations
// fix the userType, so a caller cannot register under the wrong role by
// mistyping a string.
type Registration interface {
	validate() error
	request() campusclient.RegisterRequest
}

// StudentRegistration signs up a student account.
type StudentRegistration struct {
	Email      string
	Password   string
	Name       string
	University string
}

func (r StudentRegistration) validate() error {
	return validateCommon(r.Email, r.Password, r.Name)
}

func (r StudentRegistration) request() campusclient.RegisterRequest {
	return campusclient.RegisterRequest{
		Email:      strings.TrimSpace(r.Email),
		Password:   r.Password,
		UserType:   campusclient.UserTypeStudent,
		Name:       strings.TrimSpace(r.Name),
		University: strings.TrimSpace(r.University),
	}
}

// CompanyRegistration signs up a company account.
type CompanyRegistration struct {
	Email       string
	Password    string
	Name        string
	CompanyName string
}

func (r CompanyRegistration) validate() error {
	return validateCommon(r.Email, r.Password, r.Name)
}

func (r CompanyRegistration) request() campusclient.RegisterRequest {
	return campusclient.RegisterRequest{
		Email:       strings.TrimSpace(r.Email),
		Password:    r.Password,
		UserType:    campusclient.UserTypeCompany,
		Name:        strings.TrimSpace(r.Name),
		CompanyName: strings.TrimSpace(r.CompanyName),
	}
}

func validateCommon(email, password, name string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < 6 || len(password) > 72 {
		return ErrInvalidPassword
	}
	if strings.TrimSpace(name) == "" {
		return ErrMissingName
	}
	return nil
}
