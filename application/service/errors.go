package service

import "errors"

// Errors returned by the services.
var (
	ErrEnumerationBudget   = errors.New("enumeration budget exceeded")
	ErrPersistenceDisabled = errors.New("solution persistence is disabled")
)
