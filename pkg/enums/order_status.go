package enums

// OrderStatus tracks a pending order through its lifecycle. The set is
// open-ended: unknown values are carried through untouched so the UI can
// introduce custom states without a schema change.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
)

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsOpen reports whether the order still accepts merged line items.
func (s OrderStatus) IsOpen() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}
