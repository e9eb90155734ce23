package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Customer is keyed by normalized phone number. It is not authoritative for pricing.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name  string `gorm:"size:255" json:"name"`
	Phone string `gorm:"size:32;uniqueIndex;not null" json:"phone"`
}

// NormalizePhone keeps digits and a single leading '+'.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "+" {
		return ""
	}
	return out
}

// PriceBookEntry remembers the last unit price used for a model in a branch.
type PriceBookEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	BranchID      uint            `gorm:"uniqueIndex:idx_price_book_key;not null" json:"branch_id"`
	Category      Category        `gorm:"size:16;uniqueIndex:idx_price_book_key;not null" json:"category"`
	ModelNumber   string          `gorm:"size:100;uniqueIndex:idx_price_book_key;not null" json:"model_number"`
	LastUnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"last_unit_price"`
}

// TableName keeps the historical table name.
func (PriceBookEntry) TableName() string { return "price_book" }
