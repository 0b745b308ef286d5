package repository

import "errors"

// Sentinel errors surfaced to services for status mapping
var (
	ErrDuplicateUnitNumber    = errors.New("a unit with this number already exists in the apartment")
	ErrDuplicateInvoicePeriod = errors.New("an invoice for this unit and period already exists")
)
