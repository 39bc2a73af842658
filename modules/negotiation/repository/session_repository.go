// Package repository persists negotiation sessions over Postgres, following
// modules/interviews/repository's pgxpool/plain-SQL shape.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/andreypavlenko/jobber/modules/negotiation/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `id, interview_id, job_id, round, max_rounds, state, history, created_at, updated_at`

func scanSession(row pgx.Row) (*model.NegotiationSession, error) {
	s := &model.NegotiationSession{}
	var state string
	var history []byte
	if err := row.Scan(&s.ID, &s.InterviewID, &s.JobID, &s.Round, &s.MaxRounds, &state, &history, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.State = model.State(state)
	if len(history) > 0 {
		if err := json.Unmarshal(history, &s.History); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (r *SessionRepository) GetByInterviewID(ctx context.Context, interviewID string) (*model.NegotiationSession, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM negotiation_sessions WHERE interview_id = $1`, interviewID)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) Create(ctx context.Context, session *model.NegotiationSession) error {
	session.ID = uuid.New().String()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	history, err := json.Marshal(session.History)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO negotiation_sessions (id, interview_id, job_id, round, max_rounds, state, history, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, session.ID, session.InterviewID, session.JobID, session.Round, session.MaxRounds, string(session.State), history, session.CreatedAt, session.UpdatedAt)
	return err
}

func (r *SessionRepository) Update(ctx context.Context, session *model.NegotiationSession) error {
	session.UpdatedAt = time.Now().UTC()
	history, err := json.Marshal(session.History)
	if err != nil {
		return err
	}

	result, err := r.pool.Exec(ctx, `
		UPDATE negotiation_sessions SET round = $2, state = $3, history = $4, updated_at = $5
		WHERE id = $1
	`, session.ID, session.Round, string(session.State), history, session.UpdatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
