package utils

import "errors"

var (
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidAvatarURL   = errors.New("avatar url must be a valid absolute url")

	ErrGroupNotFound    = errors.New("group not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInUse    = errors.New("category still has groups")

	ErrSearchUnavailable = errors.New("search backend unavailable")
)
