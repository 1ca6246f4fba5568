/*
Package handler provides the HTTP handlers and routing setup for the CampusCraft server.

This file covers account registration, login, and the email verification flow.
Verification codes are issued and logged; actual mail delivery is a deployment
concern and happens outside this process.
*/
package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/Bini-2002/campuscraft/internal/app/db"
	"github.com/Bini-2002/campuscraft/internal/app/store"
	"github.com/Bini-2002/campuscraft/internal/pkg/auth/jwt"
	"github.com/Bini-2002/campuscraft/internal/pkg/errs"
	"github.com/Bini-2002/campuscraft/internal/pkg/logx"
	"github.com/Bini-2002/campuscraft/internal/pkg/randx"
	"github.com/Bini-2002/campuscraft/internal/pkg/req"
	"github.com/Bini-2002/campuscraft/internal/pkg/resp"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const (
	UserTypeStudent = "student"
	UserTypeCompany = "company"
)

func validUserType(userType string) bool {
	return userType == UserTypeStudent || userType == UserTypeCompany
}

func validPassword(password string) bool {
	// bcrypt truncates input beyond 72 bytes, so the upper bound is in bytes.
	runeLen := utf8.RuneCountInString(password)
	return runeLen >= 6 && len(password) <= 72
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	UserType    string `json:"userType"`
	Name        string `json:"name"`
	University  string `json:"university"`
	CompanyName string `json:"companyName"`
}

// HandleRegister creates a new unverified account and issues the verification
// material: a 6-digit code (stored server-side, delivered out of band) and a
// signed verification-link token. No session token is issued until the
// account is verified.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Email = normalizeEmail(input.Email)
		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		if !validPassword(input.Password) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		if !validUserType(input.UserType) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUserType))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		user := &store.User{
			ID:           randx.NewID(),
			Email:        input.Email,
			PasswordHash: string(hashedPassword),
			UserType:     input.UserType,
			Name:         strings.TrimSpace(input.Name),
		}
		switch input.UserType {
		case UserTypeStudent:
			user.University = strings.TrimSpace(input.University)
		case UserTypeCompany:
			user.CompanyName = strings.TrimSpace(input.CompanyName)
		}

		if err := deps.Store.CreateUser(r.Context(), user); err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("registration conflict: email already registered for role", "email", input.Email, "user_type", input.UserType)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to create user in database")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := issueVerificationCode(r, deps, user); err != nil {
			logx.Error(err, "register: failed to store verification code", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		verifyPayload := &jwt.Payload{
			ID:       user.ID,
			Email:    user.Email,
			UserType: user.UserType,
			Purpose:  jwt.PurposeVerify,
		}
		verificationToken, err := jwt.GenerateToken(verifyPayload, deps.Config.JWTSecret, jwt.VerificationExpiration)
		if err != nil {
			logx.Error(err, "register: failed to generate verification token", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user":              user,
			"verificationToken": verificationToken,
		})
	}
}

// issueVerificationCode generates and stores a fresh code for the user. The
// code is logged because no mailer runs in this process.
func issueVerificationCode(r *http.Request, deps *AppDeps, user *store.User) error {
	code, err := randx.VerificationCode()
	if err != nil {
		return err
	}

	if err := deps.Store.UpsertVerificationCode(r.Context(), user.ID, code, randx.VerificationCodeTTL); err != nil {
		return err
	}

	logx.Info("Verification code issued", "email", user.Email, "user_type", user.UserType, "code", code)
	return nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// HandleLogin verifies credentials and issues a session token. Unverified
// accounts are rejected with a distinct error so clients can route the user
// to the verification flow instead of the generic failure path.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Email = normalizeEmail(input.Email)
		if !validUserType(input.UserType) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUserType))
			return
		}

		user, err := deps.Store.GetUserByEmailAndType(r.Context(), input.Email, input.UserType)
		if err != nil {
			logx.Warn("login: user fetch failed", "email", input.Email, "user_type", input.UserType, "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "email", input.Email, "user_type", input.UserType)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		// Credentials are fine but the account is not usable yet. Checked
		// after the password so the error never leaks account existence.
		if !user.IsVerified {
			resp.RespondError(w, r, errs.NewError(errs.ErrAccountNotVerified))
			return
		}

		payload := &jwt.Payload{
			ID:       user.ID,
			Email:    user.Email,
			UserType: user.UserType,
			Purpose:  jwt.PurposeSession,
		}

		token, err := jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.SessionExpiration)
		if err != nil {
			logx.Error(err, "login: jwt generation failed", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

type VerifyCodeInput struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Code     string `json:"code"`
}

// HandleVerifyCode checks the 6-digit code sent at registration and marks
// the account verified.
func HandleVerifyCode(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input VerifyCodeInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Email = normalizeEmail(input.Email)
		if !validUserType(input.UserType) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUserType))
			return
		}
		if !randx.IsValidVerificationCode(input.Code) {
			resp.RespondError(w, r, errs.NewError(errs.ErrVerificationCodeInvalid))
			return
		}

		user, err := deps.Store.GetUserByEmailAndType(r.Context(), input.Email, input.UserType)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
			return
		}

		if user.IsVerified {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyVerified))
			return
		}

		pending, err := deps.Store.GetVerificationCode(r.Context(), user.ID)
		if err != nil || pending.Expired() || pending.Code != input.Code {
			resp.RespondError(w, r, errs.NewError(errs.ErrVerificationCodeInvalid))
			return
		}

		verified, err := markVerified(r, deps, user.ID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": verified})
	}
}

type VerifyTokenInput struct {
	Token string `json:"token"`
}

// HandleVerifyToken handles the verification-link path: the signed token from
// registration proves control of the email address.
func HandleVerifyToken(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input VerifyTokenInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		payload, err := jwt.ParseToken(input.Token, deps.Config.JWTSecret)
		if err != nil || payload.Purpose != jwt.PurposeVerify {
			resp.RespondError(w, r, errs.NewError(errs.ErrVerificationTokenInvalid))
			return
		}

		user, err := deps.Store.GetUserByID(r.Context(), payload.ID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrVerificationTokenInvalid))
			return
		}

		if user.IsVerified {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyVerified))
			return
		}

		verified, err := markVerified(r, deps, user.ID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": verified})
	}
}

func markVerified(r *http.Request, deps *AppDeps, userID string) (*store.User, error) {
	if err := deps.Store.MarkVerified(r.Context(), userID); err != nil {
		logx.Error(err, "verification: failed to mark user verified", "user_id", userID)
		return nil, err
	}
	return deps.Store.GetUserByID(r.Context(), userID)
}

type ResendCodeInput struct {
	Email    string `json:"email"`
	UserType string `json:"userType"`
}

// HandleResendCode replaces the pending verification code with a fresh one.
func HandleResendCode(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ResendCodeInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Email = normalizeEmail(input.Email)
		if !validUserType(input.UserType) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUserType))
			return
		}

		user, err := deps.Store.GetUserByEmailAndType(r.Context(), input.Email, input.UserType)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if user.IsVerified {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyVerified))
			return
		}

		if err := issueVerificationCode(r, deps, user); err != nil {
			logx.Error(err, "resend: failed to store verification code", "user_id", user.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
