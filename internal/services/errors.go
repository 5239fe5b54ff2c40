package services

import "errors"

// Analytics service errors
var (
	// Upload errors
	ErrNoUploads      = errors.New("no order exports found")
	ErrUploadNotFound = errors.New("order export not found")

	// Comparison errors
	ErrSamePeriod = errors.New("the two periods must differ")
)
