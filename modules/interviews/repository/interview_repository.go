package repository

import (
	"context"
	"errors"
	"time"

	"github.com/andreypavlenko/jobber/modules/interviews/model"
	"github.com/andreypavlenko/jobber/modules/interviews/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InterviewRepository implements ports.Repository over Postgres, following
// modules/applications/repository's pgxpool + plain-SQL shape.
type InterviewRepository struct {
	pool *pgxpool.Pool
}

func NewInterviewRepository(pool *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{pool: pool}
}

const selectColumns = `id, application_id, job_id, recruiter_id, candidate_id, rank_at_time, status,
	confirmation_deadline, slot_selection_deadline, scheduled_time, no_show_risk, calendar_event_ref,
	created_at, updated_at`

func (r *InterviewRepository) scanRow(row pgx.Row) (*model.Interview, error) {
	iv := &model.Interview{}
	var status string
	err := row.Scan(&iv.ID, &iv.ApplicationID, &iv.JobID, &iv.RecruiterID, &iv.CandidateID, &iv.RankAtTime, &status,
		&iv.ConfirmationDeadline, &iv.SlotSelectionDeadline, &iv.ScheduledTime, &iv.NoShowRisk, &iv.CalendarEventRef,
		&iv.CreatedAt, &iv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	iv.Status = model.Status(status)
	return iv, nil
}

func (r *InterviewRepository) GetByApplicationID(ctx context.Context, applicationID string) (*model.Interview, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM interviews WHERE application_id = $1`, applicationID)
	iv, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return iv, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM interviews WHERE id = $1`, id)
	iv, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return iv, nil
}

func (r *InterviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	interview.ID = uuid.New().String()
	now := time.Now().UTC()
	interview.CreatedAt = now
	interview.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO interviews (id, application_id, job_id, recruiter_id, candidate_id, rank_at_time, status,
			confirmation_deadline, slot_selection_deadline, scheduled_time, no_show_risk, calendar_event_ref,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`, interview.ID, interview.ApplicationID, interview.JobID, interview.RecruiterID, interview.CandidateID,
		interview.RankAtTime, string(interview.Status), interview.ConfirmationDeadline, interview.SlotSelectionDeadline,
		interview.ScheduledTime, interview.NoShowRisk, interview.CalendarEventRef, interview.CreatedAt, interview.UpdatedAt)
	return err
}

// TransitionStatus re-reads the row with SELECT ... FOR UPDATE inside a
// transaction, checks it is still in expectedStatus, applies mutate, and
// writes it back before committing; a transition that finds the status
// already changed by a concurrent one returns ports.ErrConflict.
func (r *InterviewRepository) TransitionStatus(ctx context.Context, id string, expectedStatus, newStatus model.Status, mutate func(*model.Interview)) (*model.Interview, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+selectColumns+` FROM interviews WHERE id = $1 FOR UPDATE`, id)
	iv, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if iv.Status != expectedStatus {
		return nil, ports.ErrConflict
	}

	if mutate != nil {
		mutate(iv)
	}
	iv.Status = newStatus
	iv.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx, `
		UPDATE interviews SET status = $2, confirmation_deadline = $3, slot_selection_deadline = $4,
			scheduled_time = $5, no_show_risk = $6, calendar_event_ref = $7, updated_at = $8
		WHERE id = $1
	`, iv.ID, string(iv.Status), iv.ConfirmationDeadline, iv.SlotSelectionDeadline, iv.ScheduledTime,
		iv.NoShowRisk, iv.CalendarEventRef, iv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return iv, nil
}

func (r *InterviewRepository) ListExpiredInvitations(ctx context.Context, now time.Time) ([]*model.Interview, error) {
	return r.listByStatusAndDeadline(ctx, model.StatusInvitationSent, "confirmation_deadline", now)
}

func (r *InterviewRepository) ListExpiredSlotSelections(ctx context.Context, now time.Time) ([]*model.Interview, error) {
	return r.listByStatusAndDeadline(ctx, model.StatusSlotPending, "slot_selection_deadline", now)
}

func (r *InterviewRepository) listByStatusAndDeadline(ctx context.Context, status model.Status, column string, now time.Time) ([]*model.Interview, error) {
	query := `SELECT ` + selectColumns + ` FROM interviews WHERE status = $1 AND ` + column + ` <= $2 ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, string(status), now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectRows(rows)
}

func (r *InterviewRepository) ListDueForReminder(ctx context.Context, windowStart, windowEnd time.Time) ([]*model.Interview, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectColumns+` FROM interviews
		WHERE status = $1 AND scheduled_time BETWEEN $2 AND $3
		ORDER BY id ASC
	`, string(model.StatusConfirmed), windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectRows(rows)
}

func (r *InterviewRepository) ListActiveForRiskRefresh(ctx context.Context, now time.Time) ([]*model.Interview, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectColumns+` FROM interviews
		WHERE status = $1 AND scheduled_time > $2
		ORDER BY id ASC
	`, string(model.StatusConfirmed), now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectRows(rows)
}

func (r *InterviewRepository) collectRows(rows pgx.Rows) ([]*model.Interview, error) {
	var out []*model.Interview
	for rows.Next() {
		iv, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

// CountConfirmedWithin counts confirmed interviews for a job scheduled
// between now and the given horizon, for shortlisting's imminent-interview
// promotion guard.
func (r *InterviewRepository) CountConfirmedWithin(ctx context.Context, jobID string, now, horizon time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM interviews
		WHERE job_id = $1 AND status = $2 AND scheduled_time BETWEEN $3 AND $4
	`, jobID, string(model.StatusConfirmed), now, horizon).Scan(&count)
	return count, err
}

func (r *InterviewRepository) SetCalendarEventRef(ctx context.Context, id string, ref string) error {
	_, err := r.pool.Exec(ctx, `UPDATE interviews SET calendar_event_ref = $2, updated_at = $3 WHERE id = $1`, id, ref, time.Now().UTC())
	return err
}

func (r *InterviewRepository) SetNoShowRisk(ctx context.Context, id string, risk float64) error {
	_, err := r.pool.Exec(ctx, `UPDATE interviews SET no_show_risk = $2, updated_at = $3 WHERE id = $1`, id, risk, time.Now().UTC())
	return err
}
