package models

import "time"

type Order struct {
	ID          int         `json:"id"`
	UserID      int         `json:"userId"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	StatusBadge string      `json:"statusBadge"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// OrderItem is an immutable snapshot of a cart line as it was placed.
type OrderItem struct {
	ID         int     `json:"id"`
	MenuItemID int     `json:"menuItemId"`
	Name       string  `json:"name"`
	Category   string  `json:"category,omitempty"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image,omitempty"`
}

// Known order statuses. The set is open: the database may hold values added
// later, so display mapping always falls back to a default badge.
const (
	StatusPlaced    = "placed"
	StatusPreparing = "preparing"
	StatusOnTheWay  = "on-the-way"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var statusBadges = map[string]string{
	StatusPlaced:    "info",
	StatusPreparing: "warning",
	StatusOnTheWay:  "secondary",
	StatusDelivered: "success",
	StatusCancelled: "error",
}

// StatusBadge maps a status to its display badge, defaulting for unknown
// values rather than failing.
func StatusBadge(status string) string {
	if badge, ok := statusBadges[status]; ok {
		return badge
	}
	return "default"
}
