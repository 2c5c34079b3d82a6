package bizerror

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrUnknownEmployer    = errors.New("unknown employer")
	ErrSessionAlreadyOpen = errors.New("a work session is already open for this employer")
	ErrUnknownHoliday     = errors.New("unknown holiday")
)
