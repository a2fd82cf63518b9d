package store

import "errors"

var (
	ErrInvalidStatus = errors.New("invalid appointment status")
	ErrUnknownDriver = errors.New("unknown storage driver")
)
