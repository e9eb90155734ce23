package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BranchSlots is the number of pre-provisioned branch rows (ids 1..BranchSlots).
const BranchSlots = 50

// Branch defaults applied at provisioning and when a settings field is left empty.
const (
	DefaultCurrency        = "AED"
	DefaultVATMode         = "included"
	DefaultCompanyTitle    = "Invoice"
	DefaultInvoiceTemplate = "classic"
)

// DefaultVATRate is 5%.
var DefaultVATRate = decimal.RequireFromString("0.05")

// Branch is a retail location slot with its own invoicing configuration.
type Branch struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"size:255;index" json:"name"`
	// PasscodeHash is a bcrypt hash; empty means the slot is open.
	PasscodeHash string `gorm:"size:255" json:"-"`

	CurrencyCode    string          `gorm:"size:8;not null" json:"currency_code"`
	VATMode         string          `gorm:"size:16;not null" json:"vat_mode"`
	VATRate         decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"vat_rate"`
	CompanyTitle    string          `gorm:"size:255" json:"company_title"`
	CompanyName     string          `gorm:"size:255" json:"company_name,omitempty"`
	CompanyAddress  string          `gorm:"size:500" json:"company_address,omitempty"`
	InvoiceTemplate string          `gorm:"size:32" json:"invoice_template"`
}

// NewBranchSlot returns an unnamed, open branch with default settings.
func NewBranchSlot(id uint) Branch {
	return Branch{
		ID:              id,
		CurrencyCode:    DefaultCurrency,
		VATMode:         DefaultVATMode,
		VATRate:         DefaultVATRate,
		CompanyTitle:    DefaultCompanyTitle,
		InvoiceTemplate: DefaultInvoiceTemplate,
	}
}

// HasPasscode reports whether the slot is protected.
func (b *Branch) HasPasscode() bool { return b.PasscodeHash != "" }

// DisplayName is the configured name, or "Branch N" for unnamed slots.
func (b *Branch) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("Branch %d", b.ID)
}
