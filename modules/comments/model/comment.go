package model

import (
	"errors"
	"time"
)

// Comment is attached to an application (optionally scoped to a stage), an
// interview, or both. At least one of ApplicationID/InterviewID is always set.
type Comment struct {
	ID            string
	UserID        string
	ApplicationID *string
	StageID       *string
	InterviewID   *string
	Content       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CommentDTO struct {
	ID            string    `json:"id"`
	ApplicationID *string   `json:"application_id,omitempty"`
	StageID       *string   `json:"stage_id,omitempty"`
	InterviewID   *string   `json:"interview_id,omitempty"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
}

func (c *Comment) ToDTO() *CommentDTO {
	return &CommentDTO{
		ID:            c.ID,
		ApplicationID: c.ApplicationID,
		StageID:       c.StageID,
		InterviewID:   c.InterviewID,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
	}
}

// CreateCommentRequest must carry ApplicationID, InterviewID, or both.
type CreateCommentRequest struct {
	ApplicationID *string `json:"application_id,omitempty"`
	StageID       *string `json:"stage_id,omitempty"`
	InterviewID   *string `json:"interview_id,omitempty"`
	Content       string  `json:"content" binding:"required,min=1"`
}

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrContentRequired = errors.New("content is required")
	ErrTargetRequired  = errors.New("either application_id or interview_id is required")
)

type ErrorCode string

const (
	CodeCommentNotFound ErrorCode = "COMMENT_NOT_FOUND"
	CodeContentRequired ErrorCode = "CONTENT_REQUIRED"
	CodeTargetRequired  ErrorCode = "TARGET_REQUIRED"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
)
