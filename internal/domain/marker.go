package domain

// DisplayMode gates which entity collections feed the map.
type DisplayMode string

const (
	DisplayOrganizations DisplayMode = "organizations"
	DisplayPeople        DisplayMode = "people"
	DisplayBoth          DisplayMode = "both"
)

// Valid reports whether the mode is one of the three supported values.
func (m DisplayMode) Valid() bool {
	switch m {
	case DisplayOrganizations, DisplayPeople, DisplayBoth:
		return true
	}
	return false
}

// MarkerType drives marker styling downstream
// (organization=red, person=green, mixed=purple).
type MarkerType string

const (
	MarkerOrganization MarkerType = "organization"
	MarkerPerson       MarkerType = "person"
	MarkerMixed        MarkerType = "mixed"
)

// MapMarker is one visually distinct point on the map. Markers are rebuilt
// from scratch on every aggregation pass and never persisted.
type MapMarker struct {
	Coordinate    Coordinate      `json:"coordinate"`
	Organizations []*Organization `json:"organizations"`
	People        []*Person       `json:"people"`
	Type          MarkerType      `json:"type"`
	Count         int             `json:"count"`
	Selected      bool            `json:"selected"`
}

// Viewport tells the renderer how to frame the marker set. Either Bounds is
// set (fit the rectangle) or Center/Zoom are (single marker or fallback).
type Viewport struct {
	Center *Coordinate  `json:"center,omitempty"`
	Zoom   int          `json:"zoom,omitempty"`
	Bounds *BoundingBox `json:"bounds,omitempty"`
}

// CoordinateLookup maps a city name to its resolved coordinate without any
// network call. The map aggregation engine depends on nothing else.
type CoordinateLookup func(city string) *Coordinate
