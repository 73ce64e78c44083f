package service

import "errors"

var (
	ErrCalculationNotFound = errors.New("calculation not found")
	ErrProposalNotFound    = errors.New("proposal not found")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrPhotoNotFound       = errors.New("photo not found")

	// ErrNothingToCalculate signals an empty calculator result, not a
	// failure: the product is unset or the area is not positive
	ErrNothingToCalculate = errors.New("nothing to calculate")

	ErrInvalidShareTarget = errors.New("unknown share target")
	ErrTooManyPhotos      = errors.New("a proposal may reference at most 3 photos")
)
