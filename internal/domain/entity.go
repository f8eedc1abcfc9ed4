package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Locatable is the shared address shape the geocoding pipeline operates on.
// Organizations and people implement it so the resolver and the assignment
// workflow never branch on entity kind.
type Locatable interface {
	StreetAddress() string
	CityName() string
	StateCode() string
	PostalCode() string
}

// Organization is a partner organization tracked by a chapter.
type Organization struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Address  *string   `json:"address,omitempty" db:"address"`
	City     *string   `json:"city,omitempty" db:"city"`
	State    *string   `json:"state,omitempty" db:"state"`
	Zip      *string   `json:"zip,omitempty" db:"zip"`
	CountyID *int64    `json:"county_id,omitempty" db:"county_id"`

	// Coordinates are filled in incrementally by the geocoding pipeline.
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (o *Organization) StreetAddress() string { return deref(o.Address) }
func (o *Organization) CityName() string      { return deref(o.City) }
func (o *Organization) StateCode() string     { return deref(o.State) }
func (o *Organization) PostalCode() string    { return deref(o.Zip) }

// Person is a contact at a partner organization.
type Person struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	FirstName      string     `json:"first_name" db:"first_name"`
	LastName       string     `json:"last_name" db:"last_name"`
	Email          *string    `json:"email,omitempty" db:"email"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" db:"organization_id"`
	Address        *string    `json:"address,omitempty" db:"address"`
	City           *string    `json:"city,omitempty" db:"city"`
	State          *string    `json:"state,omitempty" db:"state"`
	Zip            *string    `json:"zip,omitempty" db:"zip"`
	CountyID       *int64     `json:"county_id,omitempty" db:"county_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (p *Person) StreetAddress() string { return deref(p.Address) }
func (p *Person) CityName() string      { return deref(p.City) }
func (p *Person) StateCode() string     { return deref(p.State) }
func (p *Person) PostalCode() string    { return deref(p.Zip) }

// FullName joins first and last name for logs and backfill summaries.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
