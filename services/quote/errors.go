package quote

import (
	"errors"
	"fmt"
)

var (
	ErrNoItems         = errors.New("no services requested")
	ErrCatalogMiss     = errors.New("service master not found")
	ErrGiftCardInvalid = errors.New("gift card not found or expired")
)

// ScheduleError reports a requested start/end that cannot be booked.
type ScheduleError struct {
	Reason string
	Err    error
}

func (e *ScheduleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schedule error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("schedule error: %s", e.Reason)
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

func newScheduleError(reason string, err error) error {
	return &ScheduleError{Reason: reason, Err: err}
}
