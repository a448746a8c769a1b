package memo

import "errors"

var (
	// ErrInvalid marks input that fails validation.
	ErrInvalid = errors.New("invalid memo")

	// ErrNotFound is returned when no memo has the requested number.
	ErrNotFound = errors.New("memo not found")

	// ErrDuplicateNumber is returned when a reference number is already taken.
	ErrDuplicateNumber = errors.New("duplicate memo number")

	// ErrAlreadyApproved is returned when approving an approved memo.
	ErrAlreadyApproved = errors.New("memo already approved")
)
