package services

import (
	"context"
	"fmt"
	"strings"

	gate "github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/go-gate"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/db"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BranchSettings is the full settings form for one branch. Saving replaces
// every field; empty values fall back to the branch defaults.
type BranchSettings struct {
	Name            string
	Passcode        string
	CurrencyCode    string
	VATMode         string
	VATRate         decimal.Decimal
	CompanyTitle    string
	CompanyName     string
	CompanyAddress  string
	InvoiceTemplate string
}

// BranchService is the branch registry: slot provisioning, configuration and passcodes.
type BranchService struct {
	db    *gorm.DB
	guard guard
	log   *zap.Logger
}

func NewBranchService(conn *gorm.DB, g *gate.Gate[policy.Actor], log *zap.Logger) *BranchService {
	return &BranchService{db: conn, guard: guard{gate: g}, log: log}
}

// EnsureSlots creates the missing branch slots.
func (s *BranchService) EnsureSlots(ctx context.Context) error {
	return db.Seed(s.db.WithContext(ctx))
}

// Get returns a branch snapshot without any access check.
func (s *BranchService) Get(ctx context.Context, id uint) (*models.Branch, error) {
	var b models.Branch
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "branch")
	}
	return &b, nil
}

// View returns a branch the actor is allowed to see.
func (s *BranchService) View(ctx context.Context, a policy.Actor, id uint) (*models.Branch, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.authorize(ctx, a, gate.ActionView, policy.ResourceBranch, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns every slot for factory, and only the actor's own branch for retail.
func (s *BranchService) List(ctx context.Context, a policy.Actor) ([]models.Branch, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if a.IsRetail() {
		b, err := s.View(ctx, a, a.BranchID)
		if err != nil {
			return nil, err
		}
		return []models.Branch{*b}, nil
	}
	var out []models.Branch
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update saves the settings of one branch. Factory only.
func (s *BranchService) Update(ctx context.Context, a policy.Actor, id uint, in BranchSettings) (*models.Branch, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	var out models.Branch
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, id).Error; err != nil {
			return notFound(err, "branch")
		}
		if err := s.guard.authorize(ctx, a, gate.ActionUpdate, policy.ResourceBranch, &out); err != nil {
			return err
		}

		hash := ""
		if p := strings.TrimSpace(in.Passcode); p != "" {
			h, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash passcode: %w", err)
			}
			hash = string(h)
		}
		out.Name = strings.TrimSpace(in.Name)
		out.PasscodeHash = hash
		out.CurrencyCode = orDefault(strings.ToUpper(in.CurrencyCode), models.DefaultCurrency)
		out.VATMode = pricing.NormalizeVATMode(in.VATMode)
		out.VATRate = pricing.NormalizeRate(in.VATRate)
		out.CompanyTitle = orDefault(in.CompanyTitle, models.DefaultCompanyTitle)
		out.CompanyName = strings.TrimSpace(in.CompanyName)
		out.CompanyAddress = strings.TrimSpace(in.CompanyAddress)
		out.InvoiceTemplate = orDefault(in.InvoiceTemplate, models.DefaultInvoiceTemplate)
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("branch settings saved", zap.Uint("branch_id", id), zap.Bool("protected", out.HasPasscode()))
	return &out, nil
}

// CheckPasscode reports whether passcode opens the slot. Open slots accept anything.
func (s *BranchService) CheckPasscode(ctx context.Context, id uint, passcode string) (bool, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return passcodeMatches(b, passcode), nil
}

// ClaimSlot verifies the passcode and, for an unnamed slot, stores the given
// name. It returns the branch the retail session is bound to.
func (s *BranchService) ClaimSlot(ctx context.Context, id uint, passcode, name string) (*models.Branch, error) {
	ok, err := s.CheckPasscode(ctx, id, passcode)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.Warn("branch login rejected", zap.Uint("branch_id", id))
		return nil, fmt.Errorf("wrong passcode: %w", ErrForbidden)
	}
	var out models.Branch
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, id).Error; err != nil {
			return notFound(err, "branch")
		}
		if out.Name != "" {
			return nil
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("branch name required: %w", ErrInvalidInput)
		}
		out.Name = name
		return tx.Model(&out).Update("name", name).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func passcodeMatches(b *models.Branch, passcode string) bool {
	if !b.HasPasscode() {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(b.PasscodeHash), []byte(passcode)) == nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
