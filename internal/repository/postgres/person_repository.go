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

const personColumns = `
	id, first_name, last_name, email, phone, organization_id,
	address, city, state, zip, county_id, created_at, updated_at
`

type personRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPersonRepository(db *DB) repository.PersonRepository {
	return &personRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *personRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id = $1`

	var person domain.Person
	err := r.db.GetContext(ctx, &person, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPersonNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get person", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &person, nil
}

func (r *personRepository) List(ctx context.Context, filter repository.PersonFilter) ([]*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.OrganizationID != nil {
		query += fmt.Sprintf(" AND organization_id = $%d", argIndex)
		args = append(args, *filter.OrganizationID)
		argIndex++
	}
	if filter.State != "" {
		query += fmt.Sprintf(" AND state = $%d", argIndex)
		args = append(args, filter.State)
		argIndex++
	}

	query += " ORDER BY last_name ASC, first_name ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	var people []*domain.Person
	err := r.db.SelectContext(ctx, &people, query, args...)
	if err != nil {
		r.logger.Error("Failed to list people", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return people, nil
}

func (r *personRepository) ListByOrganizations(ctx context.Context, orgIDs []uuid.UUID) ([]*domain.Person, error) {
	if len(orgIDs) == 0 {
		return nil, nil
	}

	idStrings := make([]string, len(orgIDs))
	for i, id := range orgIDs {
		idStrings[i] = id.String()
	}

	query := `SELECT ` + personColumns + ` FROM people WHERE organization_id = ANY($1)`

	var people []*domain.Person
	err := r.db.SelectContext(ctx, &people, query, pq.Array(idStrings))
	if err != nil {
		r.logger.Error("Failed to list people by organizations",
			zap.Int("org_count", len(orgIDs)),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return people, nil
}

func (r *personRepository) Create(ctx context.Context, person *domain.Person) error {
	query := `
		INSERT INTO people (id, first_name, last_name, email, phone, organization_id,
		                    address, city, state, zip, county_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		person.ID, person.FirstName, person.LastName, person.Email, person.Phone,
		person.OrganizationID, person.Address, person.City, person.State,
		person.Zip, person.CountyID,
	).Scan(&person.CreatedAt, &person.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create person", zap.String("name", person.FullName()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *personRepository) Update(ctx context.Context, person *domain.Person) error {
	query := `
		UPDATE people
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
		    organization_id = $6, address = $7, city = $8, state = $9,
		    zip = $10, county_id = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		person.ID, person.FirstName, person.LastName, person.Email, person.Phone,
		person.OrganizationID, person.Address, person.City, person.State,
		person.Zip, person.CountyID,
	).Scan(&person.UpdatedAt)
	if err == sql.ErrNoRows {
		return errors.ErrPersonNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update person", zap.String("id", person.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

// AssignCounty sets county_id only when the row has none.
func (r *personRepository) AssignCounty(ctx context.Context, id uuid.UUID, countyID int64) error {
	query := `
		UPDATE people
		SET county_id = $2, updated_at = NOW()
		WHERE id = $1 AND county_id IS NULL
	`

	if _, err := r.db.ExecContext(ctx, query, id, countyID); err != nil {
		r.logger.Error("Failed to assign county to person",
			zap.String("id", id.String()),
			zap.Int64("county_id", countyID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *personRepository) ListMissingCounty(ctx context.Context) ([]*domain.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM people
		WHERE county_id IS NULL
		  AND city IS NOT NULL AND city <> ''
		ORDER BY created_at ASC
	`

	var people []*domain.Person
	err := r.db.SelectContext(ctx, &people, query)
	if err != nil {
		r.logger.Error("Failed to list people missing county", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return people, nil
}
