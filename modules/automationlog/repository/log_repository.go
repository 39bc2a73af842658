package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/andreypavlenko/jobber/modules/automationlog/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LogRepository implements ports.Repository over Postgres. details is stored
// as jsonb so interview_id/candidate_id filters are plain
// details->>'key' lookups rather than a second table.
type LogRepository struct {
	pool *pgxpool.Pool
}

func NewLogRepository(pool *pgxpool.Pool) *LogRepository {
	return &LogRepository{pool: pool}
}

func (r *LogRepository) Append(ctx context.Context, log *model.AutomationLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	details, err := json.Marshal(log.Details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO automation_log (id, job_id, action_type, trigger_source, actor, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.pool.Exec(ctx, query, log.ID, log.JobID, string(log.ActionType), string(log.TriggerSource), log.Actor, details, log.CreatedAt)
	return err
}

func (r *LogRepository) Query(ctx context.Context, filter model.QueryFilter) ([]*model.AutomationLog, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, job_id, action_type, trigger_source, actor, details, created_at FROM automation_log WHERE 1=1`)
	args := []interface{}{}

	if filter.JobID != "" {
		args = append(args, filter.JobID)
		sb.WriteString(" AND job_id = $" + strconv.Itoa(len(args)))
	}
	if filter.ActionType != "" {
		args = append(args, string(filter.ActionType))
		sb.WriteString(" AND action_type = $" + strconv.Itoa(len(args)))
	}
	if filter.InterviewID != "" {
		args = append(args, filter.InterviewID)
		sb.WriteString(" AND details->>'interview_id' = $" + strconv.Itoa(len(args)))
	}
	if filter.CandidateID != "" {
		args = append(args, filter.CandidateID)
		sb.WriteString(" AND details->>'candidate_id' = $" + strconv.Itoa(len(args)))
	}
	if filter.StartTime != nil {
		args = append(args, *filter.StartTime)
		sb.WriteString(" AND created_at >= $" + strconv.Itoa(len(args)))
	}
	if filter.EndTime != nil {
		args = append(args, *filter.EndTime)
		sb.WriteString(" AND created_at <= $" + strconv.Itoa(len(args)))
	}

	sb.WriteString(" ORDER BY created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))

	args = append(args, filter.Offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*model.AutomationLog
	for rows.Next() {
		l := &model.AutomationLog{}
		var actionType, triggerSource string
		var details []byte
		if err := rows.Scan(&l.ID, &l.JobID, &actionType, &triggerSource, &l.Actor, &details, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.ActionType = model.ActionType(actionType)
		l.TriggerSource = model.TriggerSource(triggerSource)
		if len(details) > 0 {
			if err := json.Unmarshal(details, &l.Details); err != nil {
				return nil, err
			}
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *LogRepository) CountByActionType(ctx context.Context, jobID string) ([]model.ActionTypeCount, error) {
	query := `SELECT action_type, COUNT(*) FROM automation_log WHERE ($1 = '' OR job_id = $1) GROUP BY action_type ORDER BY action_type`
	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.ActionTypeCount
	for rows.Next() {
		var c model.ActionTypeCount
		var actionType string
		if err := rows.Scan(&actionType, &c.Count); err != nil {
			return nil, err
		}
		c.ActionType = model.ActionType(actionType)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *LogRepository) CountByTriggerSource(ctx context.Context, jobID string) ([]model.TriggerSourceCount, error) {
	query := `SELECT trigger_source, COUNT(*) FROM automation_log WHERE ($1 = '' OR job_id = $1) GROUP BY trigger_source ORDER BY trigger_source`
	rows, err := r.pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.TriggerSourceCount
	for rows.Next() {
		var c model.TriggerSourceCount
		var triggerSource string
		if err := rows.Scan(&triggerSource, &c.Count); err != nil {
			return nil, err
		}
		c.TriggerSource = model.TriggerSource(triggerSource)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
