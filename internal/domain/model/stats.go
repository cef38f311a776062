package model

import "github.com/shopspring/decimal"

// OrderStats is the aggregate reporting view cached for admin dashboards.
// Revenue sums totals of paid orders only.
type OrderStats struct {
	TotalOrders int64                 `json:"total_orders"`
	ByStatus    map[OrderStatus]int64 `json:"by_status"`
	Revenue     decimal.Decimal       `json:"revenue"`
}
