package domain

// County is one county-equivalent unit in the chapter reference table.
// Every county belongs to exactly one chapter, one region and one division.
// The table is populated by an administrative import and is read-only here.
type County struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	LongName     string  `json:"long_name" db:"long_name"`
	State        string  `json:"state" db:"state"`
	FIPSCode     *string `json:"fips_code,omitempty" db:"fips_code"`
	Chapter      string  `json:"chapter" db:"chapter"`
	ChapterCode  string  `json:"chapter_code" db:"chapter_code"`
	Region       string  `json:"region" db:"region"`
	RegionCode   string  `json:"region_code" db:"region_code"`
	Division     string  `json:"division" db:"division"`
	DivisionCode string  `json:"division_code" db:"division_code"`

	// Chapter contact fields, informational only.
	ChapterAddress  *string `json:"chapter_address,omitempty" db:"chapter_address"`
	ChapterPhone    *string `json:"chapter_phone,omitempty" db:"chapter_phone"`
	ChapterTimezone *string `json:"chapter_timezone,omitempty" db:"chapter_timezone"`
}
