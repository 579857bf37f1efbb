package enums

// SyncCategory names the collections pushed to remote storage. Each category
// owns one single-flight guard slot.
type SyncCategory string

const (
	SyncCategoryItems           SyncCategory = "items"
	SyncCategorySuppliers       SyncCategory = "suppliers"
	SyncCategoryPendingOrders   SyncCategory = "pending_orders"
	SyncCategoryCompletedOrders SyncCategory = "completed_orders"
	SyncCategoryCurrentOrder    SyncCategory = "current_order"
)

// String implements fmt.Stringer.
func (c SyncCategory) String() string {
	return string(c)
}

// SyncCategories lists every category in push order.
func SyncCategories() []SyncCategory {
	return []SyncCategory{
		SyncCategoryItems,
		SyncCategorySuppliers,
		SyncCategoryPendingOrders,
		SyncCategoryCompletedOrders,
		SyncCategoryCurrentOrder,
	}
}
