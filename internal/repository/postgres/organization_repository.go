package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/partner-crm/internal/domain"
	"github.com/partner-crm/internal/domain/repository"
	"github.com/partner-crm/internal/pkg/errors"
)

const organizationColumns = `
	id, name, address, city, state, zip, county_id,
	latitude, longitude, created_at, updated_at
`

type organizationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewOrganizationRepository(db *DB) repository.OrganizationRepository {
	return &organizationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *organizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`

	var org domain.Organization
	err := r.db.GetContext(ctx, &org, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrOrganizationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get organization", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &org, nil
}

func (r *organizationRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = ANY($1)`

	var orgs []*domain.Organization
	err := r.db.SelectContext(ctx, &orgs, query, pq.Array(idStrings))
	if err != nil {
		r.logger.Error("Failed to get organizations by IDs", zap.Int("count", len(ids)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return orgs, nil
}

func (r *organizationRepository) List(ctx context.Context, filter repository.OrganizationFilter) ([]*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.State != "" {
		query += fmt.Sprintf(" AND state = $%d", argIndex)
		args = append(args, filter.State)
		argIndex++
	}
	if filter.City != "" {
		query += fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", argIndex)
		args = append(args, filter.City)
		argIndex++
	}

	query += " ORDER BY name ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	var orgs []*domain.Organization
	err := r.db.SelectContext(ctx, &orgs, query, args...)
	if err != nil {
		r.logger.Error("Failed to list organizations", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return orgs, nil
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	query := `
		INSERT INTO organizations (id, name, address, city, state, zip, county_id, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		org.ID, org.Name, org.Address, org.City, org.State, org.Zip,
		org.CountyID, org.Latitude, org.Longitude,
	).Scan(&org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create organization", zap.String("name", org.Name), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	query := `
		UPDATE organizations
		SET name = $2, address = $3, city = $4, state = $5, zip = $6,
		    county_id = $7, latitude = $8, longitude = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		org.ID, org.Name, org.Address, org.City, org.State, org.Zip,
		org.CountyID, org.Latitude, org.Longitude,
	).Scan(&org.UpdatedAt)
	if err == sql.ErrNoRows {
		return errors.ErrOrganizationNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update organization", zap.String("id", org.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// AssignCounty sets county_id only when the row has none, so a concurrent
// explicit assignment is never clobbered by the background geocode path.
func (r *organizationRepository) AssignCounty(ctx context.Context, id uuid.UUID, countyID int64) error {
	query := `
		UPDATE organizations
		SET county_id = $2, updated_at = NOW()
		WHERE id = $1 AND county_id IS NULL
	`

	if _, err := r.db.ExecContext(ctx, query, id, countyID); err != nil {
		r.logger.Error("Failed to assign county to organization",
			zap.String("id", id.String()),
			zap.Int64("county_id", countyID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *organizationRepository) SetCoordinates(ctx context.Context, id uuid.UUID, lat, lon float64) error {
	query := `
		UPDATE organizations
		SET latitude = $2, longitude = $3, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, id, lat, lon); err != nil {
		r.logger.Error("Failed to set organization coordinates",
			zap.String("id", id.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *organizationRepository) ListMissingCounty(ctx context.Context) ([]*domain.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		WHERE county_id IS NULL
		  AND city IS NOT NULL AND city <> ''
		ORDER BY created_at ASC
	`

	var orgs []*domain.Organization
	err := r.db.SelectContext(ctx, &orgs, query)
	if err != nil {
		r.logger.Error("Failed to list organizations missing county", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return orgs, nil
}
