// Package service contains the application services that orchestrate
// validation, authorization, and store access for the API handlers.
package service

import "errors"

// Common service errors.
var (
	// ErrInvalidPage is returned when a pagination parameter is not a
	// positive integer. Invalid input is rejected, never silently defaulted.
	ErrInvalidPage = errors.New("page must be a positive integer")

	// ErrInvalidLimit is returned when the page size is not a positive
	// integer or exceeds the maximum.
	ErrInvalidLimit = errors.New("limit must be a positive integer no greater than 100")

	// ErrInvalidStatusFilter is returned when the status filter is not a
	// known task status.
	ErrInvalidStatusFilter = errors.New("invalid status filter")

	// ErrInvalidPriorityFilter is returned when the priority filter is not
	// a known task priority.
	ErrInvalidPriorityFilter = errors.New("invalid priority filter")
)
