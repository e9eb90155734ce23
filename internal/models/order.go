package models

import (
	"strings"
	"time"
)

// OrderStatus is the production status of an order. Factory staff may set any
// value at any time; the sequence below is descriptive only.
type OrderStatus string

const (
	OrderStatusDraft         OrderStatus = "DRAFT"
	OrderStatusSentToFactory OrderStatus = "SENT_TO_FACTORY"
	OrderStatusInProduction  OrderStatus = "IN_PRODUCTION"
	OrderStatusReady         OrderStatus = "READY"
	OrderStatusDelivered     OrderStatus = "DELIVERED"
	OrderStatusCancelled     OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusDraft,
	OrderStatusSentToFactory,
	OrderStatusInProduction,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus returns the canonical status and whether s was valid.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range OrderStatuses {
		if st == known {
			return st, true
		}
	}
	return OrderStatusDraft, false
}

// NormalizeOrderStatus returns the canonical status; unknown values become DRAFT.
func NormalizeOrderStatus(s string) OrderStatus {
	st, _ := ParseOrderStatus(s)
	return st
}

// Order is a non-monetary production order.
type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// OrderNo is free text and not unique.
	OrderNo string `gorm:"size:64;not null;index" json:"order_no"`
	// Branch is the denormalized branch name.
	Branch   string `gorm:"size:255;not null;index" json:"branch"`
	BranchID *uint  `gorm:"index" json:"branch_id,omitempty"`

	OrderDate time.Time   `gorm:"not null" json:"order_date"`
	Status    OrderStatus `gorm:"size:32;not null;index" json:"status"`
	Notes     string      `gorm:"type:text" json:"notes,omitempty"`

	// SourceInvoiceID is set only for orders projected from a finalized invoice.
	SourceInvoiceID *uint `gorm:"uniqueIndex" json:"source_invoice_id,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// IsDraft reports whether the order is still editable by retail staff.
func (o *Order) IsDraft() bool { return o.Status == OrderStatusDraft }

// InBranch reports whether the order belongs to branch id.
func (o *Order) InBranch(id uint) bool { return o.BranchID != nil && *o.BranchID == id }

// OrderItem is one garment to produce.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	OrderID  uint     `gorm:"index;not null" json:"order_id"`
	Category Category `gorm:"size:16;not null" json:"category"`
	GarmentSpec
}
