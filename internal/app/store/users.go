package store

import (
	"context"
	"fmt"
	"time"
)

const userColumns = `id, email, password_hash, user_type, is_verified, name, university, company_name, avatar_key, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.UserType, &u.IsVerified,
		&u.Name, &u.University, &u.CompanyName, &u.AvatarKey,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// CreateUser inserts a new unverified account. A unique violation on
// (email, user_type) surfaces unchanged so callers can map it to a
// user-facing conflict error.
func (s *Store) CreateUser(ctx context.Context, u *User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, user_type, is_verified, name, university, company_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.PasswordHash, u.UserType, u.IsVerified, u.Name, u.University, u.CompanyName,
	)
	return err
}

// GetUserByEmailAndType fetches an account by its login identity.
func (s *Store) GetUserByEmailAndType(ctx context.Context, email, userType string) (*User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND user_type = $2`,
		email, userType,
	)
	return scanUser(row)
}

// GetUserByID fetches an account by primary key.
func (s *Store) GetUserByID(ctx context.Context, id string) (*User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// MarkVerified flips the verification flag and removes the pending code.
func (s *Store) MarkVerified(ctx context.Context, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET is_verified = TRUE, updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	_, err = s.pool.Exec(ctx, `DELETE FROM verification_codes WHERE user_id = $1`, userID)
	return err
}

// UserProfilePatch carries optional profile updates. Nil fields are left untouched.
type UserProfilePatch struct {
	Name        *string
	University  *string
	CompanyName *string
	AvatarKey   *string
}

// UpdateUserProfile applies a partial profile update and returns the fresh record.
func (s *Store) UpdateUserProfile(ctx context.Context, userID string, patch UserProfilePatch) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users SET
			name         = COALESCE($2, name),
			university   = COALESCE($3, university),
			company_name = COALESCE($4, company_name),
			avatar_key   = COALESCE($5, avatar_key),
			updated_at   = now()
		WHERE id = $1
		RETURNING `+userColumns,
		userID, patch.Name, patch.University, patch.CompanyName, patch.AvatarKey,
	)
	return scanUser(row)
}

// UpsertVerificationCode replaces any pending code for the user with a fresh one.
func (s *Store) UpsertVerificationCode(ctx context.Context, userID, code string, ttl time.Duration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO verification_codes (user_id, code, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET code = $2, expires_at = $3, created_at = now()`,
		userID, code, time.Now().Add(ttl),
	)
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

// GetVerificationCode fetches the pending code for a user.
func (s *Store) GetVerificationCode(ctx context.Context, userID string) (*VerificationCode, error) {
	var vc VerificationCode
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, code, expires_at, created_at FROM verification_codes WHERE user_id = $1`,
		userID,
	).Scan(&vc.UserID, &vc.Code, &vc.ExpiresAt, &vc.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &vc, nil
}
