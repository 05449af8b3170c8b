package schedule

import "errors"

var (
	// ErrServiceUnavailable is returned when the requested service does not
	// exist or has been deactivated
	ErrServiceUnavailable = errors.New("service is not available for booking")

	// ErrDayClosed is returned when the studio is closed on the requested weekday
	ErrDayClosed = errors.New("the studio is closed on this day")

	// ErrOutsideBusinessHours is returned when the requested time does not fit
	// inside the weekday's operating window
	ErrOutsideBusinessHours = errors.New("requested time is outside business hours")
)
