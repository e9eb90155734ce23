package services

import (
	"context"
	"fmt"
	"strings"

	gate "github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/go-gate"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceBookService remembers the last unit price per branch, category and model.
type PriceBookService struct {
	db    *gorm.DB
	guard guard
}

func NewPriceBookService(conn *gorm.DB, g *gate.Gate[policy.Actor]) *PriceBookService {
	return &PriceBookService{db: conn, guard: guard{gate: g}}
}

// Lookup returns the last price used for a model in a branch.
func (s *PriceBookService) Lookup(ctx context.Context, a policy.Actor, branchID uint, category, modelNumber string) (*models.PriceBookEntry, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if err := s.guard.authorize(ctx, a, gate.ActionView, policy.ResourceInvoice, policy.BranchScope(branchID)); err != nil {
		return nil, err
	}
	modelNumber = strings.TrimSpace(modelNumber)
	if modelNumber == "" {
		return nil, fmt.Errorf("model_number: %w", ErrInvalidInput)
	}
	var e models.PriceBookEntry
	err := s.db.WithContext(ctx).
		Where("branch_id = ? AND category = ? AND model_number = ?", branchID, models.NormalizeCategory(category), modelNumber).
		First(&e).Error
	if err != nil {
		return nil, notFound(err, "price_book")
	}
	return &e, nil
}

// record stores price as the latest unit price inside tx. No-op without a model number.
func (s *PriceBookService) record(tx *gorm.DB, branchID uint, category models.Category, modelNumber string, price decimal.Decimal) error {
	if modelNumber == "" {
		return nil
	}
	e := models.PriceBookEntry{
		BranchID:      branchID,
		Category:      category,
		ModelNumber:   modelNumber,
		LastUnitPrice: price,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "branch_id"}, {Name: "category"}, {Name: "model_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_unit_price", "updated_at"}),
	}).Create(&e).Error
}
