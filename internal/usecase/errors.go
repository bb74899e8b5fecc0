package usecase

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidInput         = errors.New("invalid input")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrSkillNotFound        = errors.New("skill not found")
	ErrDirectoryUnavailable = errors.New("profile directory unavailable")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrInternal             = errors.New("internal error")
)
