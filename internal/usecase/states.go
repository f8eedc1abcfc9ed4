package usecase

import (
	"strings"

	"github.com/partner-crm/internal/domain"
)

// stateCodes maps lowercase full state names to their 2-letter codes.
var stateCodes = map[string]string{
	"alabama":              "AL",
	"alaska":               "AK",
	"arizona":              "AZ",
	"arkansas":             "AR",
	"california":           "CA",
	"colorado":             "CO",
	"connecticut":          "CT",
	"delaware":             "DE",
	"district of columbia": "DC",
	"florida":              "FL",
	"georgia":              "GA",
	"hawaii":               "HI",
	"idaho":                "ID",
	"illinois":             "IL",
	"indiana":              "IN",
	"iowa":                 "IA",
	"kansas":               "KS",
	"kentucky":             "KY",
	"louisiana":            "LA",
	"maine":                "ME",
	"maryland":             "MD",
	"massachusetts":        "MA",
	"michigan":             "MI",
	"minnesota":            "MN",
	"mississippi":          "MS",
	"missouri":             "MO",
	"montana":              "MT",
	"nebraska":             "NE",
	"nevada":               "NV",
	"new hampshire":        "NH",
	"new jersey":           "NJ",
	"new mexico":           "NM",
	"new york":             "NY",
	"north carolina":       "NC",
	"north dakota":         "ND",
	"ohio":                 "OH",
	"oklahoma":             "OK",
	"oregon":               "OR",
	"pennsylvania":         "PA",
	"rhode island":         "RI",
	"south carolina":       "SC",
	"south dakota":         "SD",
	"tennessee":            "TN",
	"texas":                "TX",
	"utah":                 "UT",
	"vermont":              "VT",
	"virginia":             "VA",
	"washington":           "WA",
	"west virginia":        "WV",
	"wisconsin":            "WI",
	"wyoming":              "WY",
}

// validStateCodes is the reverse index used to accept codes as-is.
var validStateCodes = func() map[string]bool {
	m := make(map[string]bool, len(stateCodes))
	for _, code := range stateCodes {
		m[code] = true
	}
	return m
}()

// NormalizeState turns a full state name or a 2-letter code into the
// canonical uppercase code. Returns "" when the input is neither.
func NormalizeState(state string) string {
	s := strings.TrimSpace(state)
	if s == "" {
		return ""
	}

	if len(s) == 2 {
		code := strings.ToUpper(s)
		if validStateCodes[code] {
			return code
		}
		return ""
	}

	return stateCodes[strings.ToLower(s)]
}

// stateBounds holds rough rectangular extents for the states the chapters
// operate in. A rectangle is a deliberate approximation: it is only the
// second-tier fallback after name matching, and it can be swapped for a
// point-in-polygon index without touching FindCounty callers.
var stateBounds = map[string]domain.BoundingBox{
	"FL": {MinLat: 24.40, MinLon: -87.63, MaxLat: 31.00, MaxLon: -80.03},
	"GA": {MinLat: 30.36, MinLon: -85.61, MaxLat: 35.00, MaxLon: -80.84},
	"AL": {MinLat: 30.22, MinLon: -88.47, MaxLat: 35.01, MaxLon: -84.89},
	"SC": {MinLat: 32.03, MinLon: -83.35, MaxLat: 35.22, MaxLon: -78.54},
	"NC": {MinLat: 33.84, MinLon: -84.32, MaxLat: 36.59, MaxLon: -75.46},
	"TN": {MinLat: 34.98, MinLon: -90.31, MaxLat: 36.68, MaxLon: -81.65},
	"MS": {MinLat: 30.17, MinLon: -91.66, MaxLat: 35.00, MaxLon: -88.10},
	"LA": {MinLat: 28.93, MinLon: -94.04, MaxLat: 33.02, MaxLon: -88.82},
	"TX": {MinLat: 25.84, MinLon: -106.65, MaxLat: 36.50, MaxLon: -93.51},
	"VA": {MinLat: 36.54, MinLon: -83.68, MaxLat: 39.47, MaxLon: -75.24},
	"NY": {MinLat: 40.50, MinLon: -79.76, MaxLat: 45.02, MaxLon: -71.86},
	"CA": {MinLat: 32.53, MinLon: -124.42, MaxLat: 42.01, MaxLon: -114.13},
}

// stateFromCoordinate derives a state code from fixed bounding boxes.
// Boxes overlap at the margins; iteration order is not significant because
// the result only seeds the low-confidence state fallback.
func stateFromCoordinate(c domain.Coordinate) string {
	for code, box := range stateBounds {
		if box.Contains(c) {
			return code
		}
	}
	return ""
}
