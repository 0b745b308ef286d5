package services

import (
	"errors"
	"strings"
)

// Common service errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidState       = errors.New("invalid state transition")
	ErrDuplicate          = errors.New("duplicate record")
	ErrValidation         = errors.New("validation failed")
	ErrUnitOccupied       = errors.New("unit is already occupied by an active tenant")
	ErrInvoiceHasPayments = errors.New("invoice has recorded payments and cannot be modified")
)

// DeleteBlockedError reports why a destructive operation was refused and
// which confirmation parameters would allow it.
type DeleteBlockedError struct {
	Blockers []string
}

func (e *DeleteBlockedError) Error() string {
	return "deletion blocked: " + strings.Join(e.Blockers, "; ")
}
