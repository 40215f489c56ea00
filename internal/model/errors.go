package model

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound = errors.New("not found")
)
