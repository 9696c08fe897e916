package enum

import "strings"

// ── CHECK constrained in DB ──

const (
	PizzaSizeSmall      = "SMALL"
	PizzaSizeMedium     = "MEDIUM"
	PizzaSizeLarge      = "LARGE"
	PizzaSizeExtraLarge = "EXTRA-LARGE"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusInTransit = "IN-TRANSIT"
	OrderStatusDelivered = "DELIVERED"
)

const (
	DefaultPizzaSize   = PizzaSizeSmall
	DefaultOrderStatus = OrderStatusPending
)

// PizzaSizes lists the accepted sizes in display order.
var PizzaSizes = []string{PizzaSizeSmall, PizzaSizeMedium, PizzaSizeLarge, PizzaSizeExtraLarge}

// OrderStatuses lists the accepted statuses in display order.
var OrderStatuses = []string{OrderStatusPending, OrderStatusInTransit, OrderStatusDelivered}

// NormalizePizzaSize upper-cases s and reports whether it is a known size.
func NormalizePizzaSize(s string) (string, bool) {
	upper := strings.ToUpper(s)
	for _, size := range PizzaSizes {
		if upper == size {
			return upper, true
		}
	}
	return "", false
}

// IsValidOrderStatus matches exactly; statuses are not case-folded.
func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
