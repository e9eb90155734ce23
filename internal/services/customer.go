package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerService keeps the customer book keyed by normalized phone.
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(conn *gorm.DB) *CustomerService {
	return &CustomerService{db: conn}
}

// Lookup finds a customer by phone in any format.
func (s *CustomerService) Lookup(ctx context.Context, a policy.Actor, phone string) (*models.Customer, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	norm := models.NormalizePhone(phone)
	if norm == "" {
		return nil, fmt.Errorf("phone: %w", ErrInvalidInput)
	}
	var c models.Customer
	if err := s.db.WithContext(ctx).Where("phone = ?", norm).First(&c).Error; err != nil {
		return nil, notFound(err, "customer")
	}
	return &c, nil
}

// upsert creates or refreshes the customer for phone inside tx. An empty
// name never overwrites a known one. Returns nil when phone has no digits.
func (s *CustomerService) upsert(tx *gorm.DB, name, phone string) (*models.Customer, error) {
	norm := models.NormalizePhone(phone)
	if norm == "" {
		return nil, nil
	}
	c := models.Customer{Name: strings.TrimSpace(name), Phone: norm}
	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "phone"}}}
	if c.Name != "" {
		onConflict.DoUpdates = clause.AssignmentColumns([]string{"name", "updated_at"})
	} else {
		onConflict.DoNothing = true
	}
	if err := tx.Clauses(onConflict).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}
	var out models.Customer
	if err := tx.Where("phone = ?", norm).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
