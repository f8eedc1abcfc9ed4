package dto

// BackfillSummary reports a bulk county-assignment run. Failures carries a
// human-readable identifier per entity that could not be resolved.
type BackfillSummary struct {
	Processed int      `json:"processed"`
	Succeeded int      `json:"succeeded"`
	Failures  []string `json:"failures,omitempty"`
}

// ResolveCityRequest is the debug geocoding query.
type ResolveCityRequest struct {
	City  string `json:"city" validate:"required,min=2,max=100"`
	State string `json:"state" validate:"required,min=2,max=50"`
}

// ResolveAddressRequest is the debug full-address geocoding query.
type ResolveAddressRequest struct {
	Address string `json:"address" validate:"required,min=5,max=300"`
}
