package service

import "errors"

var (
	ErrValidation     = errors.New("validation")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidLogin   = errors.New("invalid login")
	ErrDuplicateOrder = errors.New("pending deposit already exists")
	ErrQRUnavailable  = errors.New("could not generate QR code")
)
