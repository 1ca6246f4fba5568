/*
Package store provides PostgreSQL persistence for CampusCraft entities.

All queries go through a shared pgx connection pool. Identifiers are UUID
strings generated by the caller (see randx), so the store never invents keys.
*/
package store

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a query matches no rows.
var ErrNotFound = errors.New("record not found")

// Store wraps the pgx pool with typed queries for every entity.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store over an initialized connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// notFound converts pgx.ErrNoRows into the store's sentinel.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// User is the account record. Profile fields are optional and default empty.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	UserType     string    `json:"userType"`
	IsVerified   bool      `json:"isVerified"`
	Name         string    `json:"name,omitempty"`
	University   string    `json:"university,omitempty"`
	CompanyName  string    `json:"companyName,omitempty"`
	AvatarKey    string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// VerificationCode is the pending email verification state for one user.
type VerificationCode struct {
	UserID    string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code can no longer be redeemed.
func (vc *VerificationCode) Expired() bool {
	return time.Now().After(vc.ExpiresAt)
}

// Job is a company's job posting.
type Job struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	JobType     string    `json:"jobType"`
	SalaryRange string    `json:"salaryRange,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Application links a student to a job posting.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	StudentID   string    `json:"studentId"`
	ResumeKey   string    `json:"-"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Conversation is a persistent student-company message thread, optionally
// anchored to a job posting.
type Conversation struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	CompanyID string    `json:"companyId"`
	JobID     string    `json:"jobId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is a single stored conversation message.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}
