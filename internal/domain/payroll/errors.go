package payroll

import "errors"

var (
	ErrSalaryConfigNotFound = errors.New("no salary configuration for guard and period")
	ErrAttendanceNotFound   = errors.New("no attendance summary for guard and period")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrRecordNotFound       = errors.New("payroll record not found")
	ErrRecordPaid           = errors.New("payroll record already paid")
	ErrRecordNotProcessed   = errors.New("payroll record must be processed before payment")
	ErrRecordCancelled      = errors.New("payroll record is cancelled")
)
