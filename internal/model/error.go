package model

import "errors"

var (
	ErrValidation           = errors.New("invalid data format")            // 400
	ErrDuplicateDocument    = errors.New("document number must be unique") // 400
	ErrOrganizationNotFound = errors.New("organization not found")         // 404
	ErrOrganizationConflict = errors.New("organization already exists")    // 409
	ErrDuplicateOperation   = errors.New("operation already processed")    // 200
	ErrBalanceOverflow      = errors.New("balance limit exceeded")         // 500
	ErrDatabase             = errors.New("database error")                 // 500
	ErrInternal             = errors.New("internal server error")          // 500
	ErrCacheMiss            = errors.New("cache miss")
)
