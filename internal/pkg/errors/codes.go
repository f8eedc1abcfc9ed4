package errors

import "net/http"

var (
	ErrOrganizationNotFound = New(
		"ORGANIZATION_NOT_FOUND",
		"Organization not found",
		http.StatusNotFound,
	)

	ErrPersonNotFound = New(
		"PERSON_NOT_FOUND",
		"Person not found",
		http.StatusNotFound,
	)

	ErrCountyNotFound = New(
		"COUNTY_NOT_FOUND",
		"County not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidDisplayMode = New(
		"INVALID_DISPLAY_MODE",
		"Display mode must be organizations, people or both",
		http.StatusBadRequest,
	)

	ErrInvalidState = New(
		"INVALID_STATE",
		"State must be a 2-letter code or a full state name",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
