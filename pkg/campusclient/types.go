package campusclient

import "time"

// Account roles. Fixed at registration; the server never changes them.
const (
	UserTypeStudent = "student"
	UserTypeCompany = "company"
)

// User is an account as the server renders it.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	UserType    string    `json:"userType"`
	IsVerified  bool      `json:"isVerified"`
	Name        string    `json:"name,omitempty"`
	University  string    `json:"university,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Job is a company's posting.
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

// Application links a student to a posting.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	StudentID   string    `json:"studentId"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Conversation is a student-company message thread.
type Conversation struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	CompanyID string    `json:"companyId"`
	JobID     string    `json:"jobId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is one stored conversation message.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Presign is a short-lived URL for a direct object-storage transfer.
type Presign struct {
	UploadURL   string `json:"uploadUrl,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Key         string `json:"key,omitempty"`
	ExpiresIn   int    `json:"expiresIn"`
}

// PresignRequest describes a file the caller wants to upload.
type PresignRequest struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// ChatTurn is one prior assistant exchange entry. Role is "user" or
// "assistant".
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
