package repository

import (
	"context"
	"time"

	"github.com/andreypavlenko/jobber/modules/comments/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, application_id, stage_id, interview_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	comment.ID = uuid.New().String()
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query, comment.ID, comment.UserID, comment.ApplicationID, comment.StageID, comment.InterviewID, comment.Content, comment.CreatedAt, comment.UpdatedAt)
	return err
}

// ListByApplication returns an application's comments, oldest first. A
// userID narrows the list to that author's own comments when given.
func (r *CommentRepository) ListByApplication(ctx context.Context, appID string, userID ...string) ([]*model.Comment, error) {
	query := `
		SELECT id, user_id, application_id, stage_id, interview_id, content, created_at, updated_at
		FROM comments WHERE application_id = $1
	`
	args := []interface{}{appID}
	if len(userID) > 0 && userID[0] != "" {
		query += " AND user_id = $2"
		args = append(args, userID[0])
	}
	query += " ORDER BY created_at ASC"

	return r.query(ctx, query, args...)
}

// ListByInterview returns an interview's comments, oldest first. A userID
// narrows the list to that author's own comments when given.
func (r *CommentRepository) ListByInterview(ctx context.Context, interviewID string, userID ...string) ([]*model.Comment, error) {
	query := `
		SELECT id, user_id, application_id, stage_id, interview_id, content, created_at, updated_at
		FROM comments WHERE interview_id = $1
	`
	args := []interface{}{interviewID}
	if len(userID) > 0 && userID[0] != "" {
		query += " AND user_id = $2"
		args = append(args, userID[0])
	}
	query += " ORDER BY created_at ASC"

	return r.query(ctx, query, args...)
}

func (r *CommentRepository) query(ctx context.Context, query string, args ...interface{}) ([]*model.Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		c := &model.Comment{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.ApplicationID, &c.StageID, &c.InterviewID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Delete(ctx context.Context, userID, commentID string) error {
	query := `DELETE FROM comments WHERE id = $1 AND user_id = $2`
	result, err := r.pool.Exec(ctx, query, commentID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}
