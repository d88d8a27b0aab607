package piket

import "errors"

var (
	ErrScheduleNotFound = errors.New("piket schedule not found")
)
