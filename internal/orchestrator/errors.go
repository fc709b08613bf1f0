package orchestrator

import "errors"

var (
	// ErrInvalidPackageID reports a package selection that is not a valid
	// registry index.
	ErrInvalidPackageID = errors.New("invalid package identifier")

	// ErrNoPackageSelected reports a parameter or run operation before any
	// package was bound.
	ErrNoPackageSelected = errors.New("no package selected")

	// ErrMalformedStepCode reports a step code that is not exactly three
	// characters.
	ErrMalformedStepCode = errors.New("malformed step code")

	// ErrDatasetLocked reports that another orchestrator holds the dataset.
	ErrDatasetLocked = errors.New("dataset is locked by another process")
)
