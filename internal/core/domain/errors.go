package domain

import "errors"

// Domain errors represent storage protocol failures.
// These are distinct from infrastructure errors, which are wrapped and returned as-is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecode indicates stored content could not be decoded into the target shape.
	// Stores recover from it by backing up the file and resetting to defaults.
	ErrDecode = errors.New("decode error")

	// ErrNotLoaded indicates Save was called before any Load acquired a version handle.
	ErrNotLoaded = errors.New("storage not loaded")

	// ErrNilValue indicates the serializer produced no value for the default document.
	ErrNilValue = errors.New("serializer produced nil default value")

	// ErrInvalidVersion indicates a version string is not a valid semantic version.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrUnsupportedType indicates an unknown cache kind or gate backend.
	ErrUnsupportedType = errors.New("unsupported type")
)
