package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/pkg/errors"
)

const countyColumns = `
	id, name, long_name, state, fips_code,
	chapter, chapter_code, region, region_code, division, division_code,
	chapter_address, chapter_phone, chapter_timezone
`

type countyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCountyRepository(db *DB) repository.CountyRepository {
	return &countyRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetByID returns a county by id.
func (r *countyRepository) GetByID(ctx context.Context, id int64) (*domain.County, error) {
	query := `SELECT ` + countyColumns + ` FROM counties WHERE id = $1`

	var county domain.County
	err := r.db.GetContext(ctx, &county, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrCountyNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get county by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &county, nil
}

// FindByName returns the first county in the state whose short or long name
// contains the given name, case-insensitively.
func (r *countyRepository) FindByName(ctx context.Context, name, state string) (*domain.County, error) {
	query := `
		SELECT ` + countyColumns + `
		FROM counties
		WHERE state = $1
		  AND (name ILIKE '%' || $2 || '%' OR long_name ILIKE '%' || $2 || '%')
		ORDER BY name ASC
		LIMIT 1
	`

	var county domain.County
	err := r.db.GetContext(ctx, &county, query, strings.ToUpper(state), name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find county by name",
			zap.String("name", name),
			zap.String("state", state),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &county, nil
}

// FindByCity returns the first county in the state whose name equals the
// city, case-insensitively. The cheap synchronous path for cities named
// after their county.
func (r *countyRepository) FindByCity(ctx context.Context, city, state string) (*domain.County, error) {
	query := `
		SELECT ` + countyColumns + `
		FROM counties
		WHERE state = $1
		  AND (LOWER(name) = LOWER($2) OR LOWER(long_name) = LOWER($2))
		LIMIT 1
	`

	var county domain.County
	err := r.db.GetContext(ctx, &county, query, strings.ToUpper(state), city)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find county by city",
			zap.String("city", city),
			zap.String("state", state),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &county, nil
}

// FirstByState returns any county in the state.
func (r *countyRepository) FirstByState(ctx context.Context, state string) (*domain.County, error) {
	query := `
		SELECT ` + countyColumns + `
		FROM counties
		WHERE state = $1
		ORDER BY name ASC
		LIMIT 1
	`

	var county domain.County
	err := r.db.GetContext(ctx, &county, query, strings.ToUpper(state))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get first county in state",
			zap.String("state", state),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &county, nil
}

// ListByState returns all counties in a state ordered by name.
func (r *countyRepository) ListByState(ctx context.Context, state string) ([]*domain.County, error) {
	query := `
		SELECT ` + countyColumns + `
		FROM counties
		WHERE state = $1
		ORDER BY name ASC
	`

	var counties []*domain.County
	err := r.db.SelectContext(ctx, &counties, query, strings.ToUpper(state))
	if err != nil {
		r.logger.Error("Failed to list counties by state",
			zap.String("state", state),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return counties, nil
}
