package feeders

import (
	"errors"
)

// Feeder errors
var (
	ErrInvalidStructure = errors.New("feeder: target must be a pointer to a struct")
	ErrEmptyPrefix      = errors.New("env: prefix cannot be empty")
	ErrFieldCannotBeSet = errors.New("env: field cannot be set")
)
