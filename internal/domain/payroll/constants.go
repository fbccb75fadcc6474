package payroll

const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusPaid      = "paid"
	StatusCancelled = "cancelled"
)
