package repository

import (
	"context"
	"errors"
	"time"

	"github.com/andreypavlenko/jobber/modules/featureflags/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlagRepository implements ports.FlagRepository over Postgres.
type FlagRepository struct {
	pool *pgxpool.Pool
}

func NewFlagRepository(pool *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{pool: pool}
}

func (r *FlagRepository) Get(ctx context.Context, name model.Name) (*model.FeatureFlag, error) {
	query := `SELECT name, enabled, description, created_at, updated_at FROM feature_flags WHERE name = $1`
	flag := &model.FeatureFlag{}
	err := r.pool.QueryRow(ctx, query, string(name)).Scan(
		&flag.Name, &flag.Enabled, &flag.Description, &flag.CreatedAt, &flag.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return flag, nil
}

func (r *FlagRepository) List(ctx context.Context) ([]*model.FeatureFlag, error) {
	query := `SELECT name, enabled, description, created_at, updated_at FROM feature_flags ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flags []*model.FeatureFlag
	for rows.Next() {
		f := &model.FeatureFlag{}
		if err := rows.Scan(&f.Name, &f.Enabled, &f.Description, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

func (r *FlagRepository) Upsert(ctx context.Context, flag *model.FeatureFlag) error {
	now := time.Now().UTC()
	flag.UpdatedAt = now
	if flag.CreatedAt.IsZero() {
		flag.CreatedAt = now
	}

	query := `
		INSERT INTO feature_flags (name, enabled, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET enabled = $2, updated_at = $5
	`
	_, err := r.pool.Exec(ctx, query, string(flag.Name), flag.Enabled, flag.Description, flag.CreatedAt, flag.UpdatedAt)
	return err
}
