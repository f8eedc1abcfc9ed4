package domain

import "github.com/google/uuid"

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// BoundingBox is a rectangular lat/lon extent.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether the point falls inside the box.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// GeocodedAddress is the provider's best interpretation of an address:
// coordinates plus the administrative breakdown used for county matching.
type GeocodedAddress struct {
	Coordinate  Coordinate `json:"coordinate"`
	County      string     `json:"county,omitempty"`
	State       string     `json:"state,omitempty"`
	City        string     `json:"city,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	Provider    string     `json:"provider,omitempty"`
}

// EntityType discriminates the two geocodable entity kinds in queue events.
type EntityType string

const (
	EntityOrganization EntityType = "organization"
	EntityPerson       EntityType = "person"
)

// Stream names for the county-assignment queue.
const (
	StreamCountyAssign = "stream:county:assign"
)

// CountyAssignEvent asks the background worker to geocode one entity and
// write the resolved county back onto its row.
type CountyAssignEvent struct {
	EntityType EntityType `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	Name       string     `json:"name"`
	Address    string     `json:"address,omitempty"`
	City       string     `json:"city,omitempty"`
	State      string     `json:"state,omitempty"`
	Zip        string     `json:"zip,omitempty"`
}

// StreamMessage is one raw message read from a stream.
type StreamMessage struct {
	ID   string
	Data string
}
