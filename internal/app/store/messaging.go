package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

func scanConversation(row interface{ Scan(...any) error }) (*Conversation, error) {
	var c Conversation
	var jobID pgtype.Text
	err := row.Scan(&c.ID, &c.StudentID, &c.CompanyID, &jobID, &c.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	c.JobID = jobID.String
	return &c, nil
}

// GetOrCreateConversation returns the existing thread between a student and a
// company, creating it when absent. The id parameter is only used when a new
// row has to be inserted.
func (s *Store) GetOrCreateConversation(ctx context.Context, id, studentID, companyID, jobID string) (*Conversation, error) {
	var job pgtype.Text
	if jobID != "" {
		job = pgtype.Text{String: jobID, Valid: true}
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO conversations (id, student_id, company_id, job_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, company_id) DO UPDATE SET student_id = EXCLUDED.student_id
		RETURNING id, student_id, company_id, job_id, created_at`,
		id, studentID, companyID, job,
	)
	return scanConversation(row)
}

// GetConversation fetches a single conversation.
func (s *Store) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, student_id, company_id, job_id, created_at FROM conversations WHERE id = $1`, id)
	return scanConversation(row)
}

// ListConversationsForUser returns every thread the user participates in,
// newest first.
func (s *Store) ListConversationsForUser(ctx context.Context, userID string) ([]*Conversation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, student_id, company_id, job_id, created_at
		FROM conversations
		WHERE student_id = $1 OR company_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	convs := make([]*Conversation, 0)
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// InsertMessage durably stores one conversation message.
func (s *Store) InsertMessage(ctx context.Context, m *Message) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		m.ID, m.ConversationID, m.SenderID, m.Body,
	).Scan(&m.CreatedAt)
}

// ListMessages returns up to limit messages of a conversation in
// chronological order.
func (s *Store) ListMessages(ctx context.Context, conversationID string, limit int) ([]*Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, conversation_id, sender_id, body, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at
		LIMIT $2`,
		conversationID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := make([]*Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}
