package models

import (
	"fmt"
	"time"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/pricing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceStatus represents the status of an invoice. FINALIZED is terminal.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusFinalized InvoiceStatus = "FINALIZED"
)

// SyncStatusSynced marks an invoice item that was projected into an order item.
const SyncStatusSynced = "SYNCED"

// Invoice is a retail sales invoice.
type Invoice struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	InvoiceNo string `gorm:"size:32;uniqueIndex;not null" json:"invoice_no"`

	BranchID uint    `gorm:"index;not null" json:"branch_id"`
	Branch   *Branch `gorm:"foreignKey:BranchID;constraint:OnDelete:RESTRICT" json:"-"`

	CustomerName  string `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone string `gorm:"size:32" json:"customer_phone,omitempty"`
	TitleOverride string `gorm:"size:255" json:"title_override,omitempty"`
	Terms         string `gorm:"type:text" json:"terms,omitempty"`

	Status InvoiceStatus `gorm:"size:16;not null;index" json:"status"`

	Subtotal        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percent"`
	DiscountApplied decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount_applied"`
	VATAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"vat_amount"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	// Snapshot of the branch configuration at creation time.
	CurrencyCode string          `gorm:"size:8;not null" json:"currency_code"`
	VATMode      string          `gorm:"size:16;not null" json:"vat_mode"`
	VATRate      decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"vat_rate"`

	FinalizedAt *time.Time `json:"finalized_at,omitempty"`

	Items    []InvoiceItem    `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []InvoicePayment `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// IsDraft returns true if the invoice is in draft status.
func (i *Invoice) IsDraft() bool { return i.Status == InvoiceStatusDraft }

// IsFinalized returns true once the invoice has been sealed.
func (i *Invoice) IsFinalized() bool { return i.Status == InvoiceStatusFinalized }

// InvoiceNumber formats the n-th invoice number, e.g. INV-000042.
func InvoiceNumber(n int64) string {
	return fmt.Sprintf("INV-%06d", n)
}

// InvoiceItem represents a line item on an invoice.
type InvoiceItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	ItemType ItemType `gorm:"size:16;not null" json:"item_type"`
	Category Category `gorm:"size:16;not null" json:"category"`
	GarmentSpec

	Quantity        decimal.Decimal `gorm:"type:decimal(10,3);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discount_percent"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`

	// Set inside the finalize transaction when the line is projected.
	LinkedOrderID     *uint  `gorm:"index" json:"linked_order_id,omitempty"`
	LinkedOrderItemID *uint  `json:"linked_order_item_id,omitempty"`
	SyncStatus        string `gorm:"size:16" json:"sync_status,omitempty"`
}

// PricingLine returns the inputs the pricing engine needs for this line.
func (item *InvoiceItem) PricingLine() pricing.Line {
	return pricing.Line{
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		DiscountAmount:  item.DiscountAmount,
		DiscountPercent: item.DiscountPercent,
	}
}

// InvoicePayment is a recorded payment. Payments are stored only; they are
// never reconciled against the invoice total.
type InvoicePayment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	InvoiceID   uint            `gorm:"index;not null" json:"invoice_id"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	Method      string          `gorm:"size:32" json:"method,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Note        string          `gorm:"size:500" json:"note,omitempty"`
}
