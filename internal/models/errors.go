package models

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("not authorized")
	ErrInsufficientPoints = errors.New("not enough points")
	ErrRewardInactive     = errors.New("reward is no longer available")
	ErrValidation         = errors.New("validation error")
)
