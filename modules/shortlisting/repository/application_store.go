package repository

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/andreypavlenko/jobber/modules/shortlisting/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationStore implements ports.ApplicationStore directly against the
// applications table, mirroring modules/applications/repository's shape
// (pgxpool, plain SQL, RowsAffected checks) without importing that module.
type ApplicationStore struct {
	pool *pgxpool.Pool
}

func NewApplicationStore(pool *pgxpool.Pool) *ApplicationStore {
	return &ApplicationStore{pool: pool}
}

func (s *ApplicationStore) ListPendingProcessed(ctx context.Context, jobID string) ([]model.CandidateRef, error) {
	query := `
		SELECT id, fit_score, rank, manual_override
		FROM applications
		WHERE job_id = $1 AND ai_processed = true AND shortlist_status = 'pending'
		ORDER BY fit_score DESC NULLS LAST, id ASC
	`
	return s.queryRefs(ctx, query, jobID)
}

func (s *ApplicationStore) ListByStatus(ctx context.Context, jobID, status string) ([]model.CandidateRef, error) {
	query := `
		SELECT id, fit_score, rank, manual_override
		FROM applications
		WHERE job_id = $1 AND shortlist_status = $2
		ORDER BY rank ASC NULLS LAST, id ASC
	`
	return s.queryRefs(ctx, query, jobID, status)
}

func (s *ApplicationStore) queryRefs(ctx context.Context, query string, args ...interface{}) ([]model.CandidateRef, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []model.CandidateRef
	for rows.Next() {
		var ref model.CandidateRef
		if err := rows.Scan(&ref.ApplicationID, &ref.FitScore, &ref.Rank, &ref.ManualOverride); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (s *ApplicationStore) CountByStatus(ctx context.Context, jobID, status string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1 AND shortlist_status = $2`, jobID, status).Scan(&count)
	return count, err
}

// AssignRank sets shortlist_status/rank unless manual_override is set, in
// which case the row is left untouched and ok=false is returned.
func (s *ApplicationStore) AssignRank(ctx context.Context, appID, status string, rank int) (bool, error) {
	result, err := s.pool.Exec(ctx, `
		UPDATE applications
		SET shortlist_status = $2, rank = $3, updated_at = $4
		WHERE id = $1 AND manual_override = false
	`, appID, status, rank, time.Now().UTC())
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// PromoteSmallestBufferRank serializes promotions per job using a Postgres
// advisory transaction lock keyed by job id, so two concurrent vacancies on
// the same job can never claim the same buffer candidate.
func (s *ApplicationStore) PromoteSmallestBufferRank(ctx context.Context, jobID string, vacatedRank int) (*model.CandidateRef, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, jobLockKey(jobID)); err != nil {
		return nil, err
	}

	var ref model.CandidateRef
	err = tx.QueryRow(ctx, `
		SELECT id, fit_score, rank, manual_override
		FROM applications
		WHERE job_id = $1 AND shortlist_status = 'buffer'
		ORDER BY rank ASC
		LIMIT 1
		FOR UPDATE
	`, jobID).Scan(&ref.ApplicationID, &ref.FitScore, &ref.Rank, &ref.ManualOverride)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE applications SET shortlist_status = 'shortlisted', rank = $2, updated_at = $3 WHERE id = $1
	`, ref.ApplicationID, vacatedRank, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	promoted := vacatedRank
	ref.Rank = &promoted
	return &ref, nil
}

func jobLockKey(jobID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("shortlisting:%s", jobID)))
	return int64(h.Sum64())
}
