package admin

import "errors"

var (
	ErrAdminNotFound     = errors.New("admin not found")
	ErrEmailAlreadyUsed  = errors.New("email already used")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidCredential = errors.New("invalid credential")
)
