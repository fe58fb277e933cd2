package models

// Order statuses as recorded in the orders table. The payment provider stays
// authoritative for charge state.
const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
)
