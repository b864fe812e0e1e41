package record

import "errors"

var (
	ErrRecordNotFound = errors.New("attendance record not found")
	ErrInvalidStatus  = errors.New("invalid attendance status")
	ErrUnknownField   = errors.New("unknown overridable field")
)
