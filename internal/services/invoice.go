package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	gate "github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/go-gate"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HeaderInput is the editable invoice header.
type HeaderInput struct {
	CustomerName  string
	CustomerPhone string
	TitleOverride string
	Terms         string
}

// ItemInput describes a new invoice line. ItemType and Category are
// normalized; amounts are brought to their stored precision and a
// non-positive quantity becomes 1.
type ItemInput struct {
	ItemType string
	Category string
	models.GarmentSpec
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountPercent decimal.Decimal
}

// PaymentInput records money received against an invoice.
type PaymentInput struct {
	PaymentDate time.Time
	Method      string
	Amount      decimal.Decimal
	Note        string
}

// InvoiceService drives the invoice lifecycle: DRAFT -> FINALIZED.
// Every operation runs in a single transaction.
type InvoiceService struct {
	db        *gorm.DB
	guard     guard
	customers *CustomerService
	prices    *PriceBookService
	log       *zap.Logger
	now       func() time.Time
}

func NewInvoiceService(conn *gorm.DB, g *gate.Gate[policy.Actor], customers *CustomerService, prices *PriceBookService, log *zap.Logger) *InvoiceService {
	return &InvoiceService{
		db:        conn,
		guard:     guard{gate: g},
		customers: customers,
		prices:    prices,
		log:       log,
		now:       time.Now,
	}
}

// CanEdit reports whether the actor may still change inv.
func (s *InvoiceService) CanEdit(ctx context.Context, a policy.Actor, inv *models.Invoice) bool {
	return s.guard.gate.CanMutate(ctx, a, policy.ResourceInvoice, inv)
}

// load fetches an invoice inside tx and checks action against it.
func (s *InvoiceService) load(ctx context.Context, tx *gorm.DB, a policy.Actor, id uint, action gate.Action) (*models.Invoice, error) {
	var inv models.Invoice
	if err := tx.First(&inv, id).Error; err != nil {
		return nil, notFound(err, "invoice")
	}
	if err := s.guard.authorize(ctx, a, action, policy.ResourceInvoice, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// CreateInvoice opens a draft invoice for branchID. The branch's currency
// and VAT settings are copied onto the invoice and never re-read.
func (s *InvoiceService) CreateInvoice(ctx context.Context, a policy.Actor, branchID uint) (*models.Invoice, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if err := s.guard.authorize(ctx, a, gate.ActionCreate, policy.ResourceInvoice, policy.BranchScope(branchID)); err != nil {
		return nil, err
	}
	var inv models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Branch
		if err := tx.First(&b, branchID).Error; err != nil {
			return notFound(err, "branch")
		}
		// Soft-deleted invoices are counted so numbers are never reused.
		var count int64
		if err := tx.Unscoped().Model(&models.Invoice{}).Count(&count).Error; err != nil {
			return err
		}
		inv = models.Invoice{
			InvoiceNo:    models.InvoiceNumber(count + 1),
			BranchID:     b.ID,
			Status:       models.InvoiceStatusDraft,
			CurrencyCode: b.CurrencyCode,
			VATMode:      pricing.NormalizeVATMode(b.VATMode),
			VATRate:      pricing.NormalizeRate(b.VATRate),
		}
		return tx.Create(&inv).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("invoice created", zap.String("invoice_no", inv.InvoiceNo), zap.Uint("branch_id", branchID))
	return &inv, nil
}

// SaveHeader updates the customer and presentation fields of a draft invoice
// and upserts the customer book when a phone number is given.
func (s *InvoiceService) SaveHeader(ctx context.Context, a policy.Actor, id uint, in HeaderInput) (*models.Invoice, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	var inv *models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if inv, err = s.load(ctx, tx, a, id, gate.ActionUpdate); err != nil {
			return err
		}
		inv.CustomerName = strings.TrimSpace(in.CustomerName)
		inv.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
		inv.TitleOverride = strings.TrimSpace(in.TitleOverride)
		inv.Terms = strings.TrimSpace(in.Terms)
		if err := tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).Updates(map[string]any{
			"customer_name":  inv.CustomerName,
			"customer_phone": inv.CustomerPhone,
			"title_override": inv.TitleOverride,
			"terms":          inv.Terms,
		}).Error; err != nil {
			return err
		}
		_, err = s.customers.upsert(tx, inv.CustomerName, inv.CustomerPhone)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// AddItem appends a line to a draft invoice. Its line total stays 0 until
// the next Recalculate or Finalize.
func (s *InvoiceService) AddItem(ctx context.Context, a policy.Actor, invoiceID uint, in ItemInput) (*models.InvoiceItem, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	category := models.NormalizeCategory(in.Category)
	line := pricing.NormalizeLine(pricing.Line{
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		DiscountAmount:  in.DiscountAmount,
		DiscountPercent: in.DiscountPercent,
	})
	item := models.InvoiceItem{
		InvoiceID:       invoiceID,
		ItemType:        models.NormalizeItemType(in.ItemType),
		Category:        category,
		GarmentSpec:     in.GarmentSpec.ForCategory(category),
		Quantity:        line.Quantity,
		UnitPrice:       line.UnitPrice,
		DiscountAmount:  line.DiscountAmount,
		DiscountPercent: line.DiscountPercent,
		LineTotal:       decimal.Zero,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := s.load(ctx, tx, a, invoiceID, gate.ActionUpdate)
		if err != nil {
			return err
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return s.prices.record(tx, inv.BranchID, item.Category, item.ModelNumber, item.UnitPrice)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes one line from a draft invoice.
func (s *InvoiceService) DeleteItem(ctx context.Context, a policy.Actor, invoiceID, itemID uint) error {
	if !a.Authenticated() {
		return ErrUnauthenticated
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.load(ctx, tx, a, invoiceID, gate.ActionUpdate); err != nil {
			return err
		}
		res := tx.Where("id = ? AND invoice_id = ?", itemID, invoiceID).Delete(&models.InvoiceItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("invoice item: %w", ErrNotFound)
		}
		return nil
	})
}

// Recalculate stores the invoice-level discount and recomputes every line
// and the aggregates. Calling it again with the same inputs changes nothing.
func (s *InvoiceService) Recalculate(ctx context.Context, a policy.Actor, id uint, discountAmount, discountPercent decimal.Decimal) (*models.Invoice, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	var inv *models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if inv, err = s.load(ctx, tx, a, id, gate.ActionUpdate); err != nil {
			return err
		}
		inv.DiscountAmount = pricing.NormalizeMoney(discountAmount)
		inv.DiscountPercent = pricing.NormalizePercent(discountPercent)
		return recompute(tx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Finalize seals a draft invoice. In one transaction it recomputes the totals
// from the stored items, flips the status only if it is still DRAFT, and
// projects the CUSTOM lines into a production order. The returned order is
// nil when the invoice has no CUSTOM lines.
func (s *InvoiceService) Finalize(ctx context.Context, a policy.Actor, id uint) (*models.Invoice, *models.Order, error) {
	if !a.Authenticated() {
		return nil, nil, ErrUnauthenticated
	}
	var (
		inv   *models.Invoice
		order *models.Order
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if inv, err = s.load(ctx, tx, a, id, gate.ActionFinalize); err != nil {
			return err
		}
		if err := recompute(tx, inv); err != nil {
			return err
		}

		now := s.now()
		res := tx.Model(&models.Invoice{}).
			Where("id = ? AND status = ?", inv.ID, models.InvoiceStatusDraft).
			Updates(map[string]any{"status": models.InvoiceStatusFinalized, "finalized_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrInvoiceLocked
		}
		inv.Status = models.InvoiceStatusFinalized
		inv.FinalizedAt = &now

		order, err = projectCustomItems(tx, inv, now)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	fields := []zap.Field{zap.String("invoice_no", inv.InvoiceNo), zap.String("total", inv.Total.StringFixed(2))}
	if order != nil {
		fields = append(fields, zap.Uint("order_id", order.ID), zap.Int("order_items", len(order.Items)))
	}
	s.log.Info("invoice finalized", fields...)
	return inv, order, nil
}

// GetInvoice returns an invoice with its items and payments.
func (s *InvoiceService) GetInvoice(ctx context.Context, a policy.Actor, id uint) (*models.Invoice, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	var inv models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date, id") }).
		First(&inv, id).Error
	if err != nil {
		return nil, notFound(err, "invoice")
	}
	if err := s.guard.authorize(ctx, a, gate.ActionView, policy.ResourceInvoice, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// DeleteInvoice soft-deletes a draft invoice. Its number stays consumed.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, a policy.Actor, id uint) error {
	if !a.Authenticated() {
		return ErrUnauthenticated
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv, err := s.load(ctx, tx, a, id, gate.ActionDelete)
		if err != nil {
			return err
		}
		return tx.Delete(inv).Error
	})
	if err != nil {
		return err
	}
	s.log.Info("invoice deleted", zap.Uint("invoice_id", id))
	return nil
}

// RecordPayment stores a payment against an invoice in any status.
func (s *InvoiceService) RecordPayment(ctx context.Context, a policy.Actor, id uint, in PaymentInput) (*models.InvoicePayment, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("amount: %w", ErrInvalidInput)
	}
	p := models.InvoicePayment{
		InvoiceID:   id,
		PaymentDate: in.PaymentDate,
		Method:      strings.ToLower(strings.TrimSpace(in.Method)),
		Amount:      in.Amount.Round(2),
		Note:        strings.TrimSpace(in.Note),
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = s.now()
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.load(ctx, tx, a, id, policy.ActionPay); err != nil {
			return err
		}
		return tx.Create(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// recompute prices every current item of inv and persists line totals and
// invoice aggregates. inv.Items is replaced with the repriced items.
func recompute(tx *gorm.DB, inv *models.Invoice) error {
	var items []models.InvoiceItem
	if err := tx.Where("invoice_id = ?", inv.ID).Order("id").Find(&items).Error; err != nil {
		return err
	}
	lines := make([]pricing.Line, len(items))
	for i := range items {
		lines[i] = items[i].PricingLine()
	}
	totals := pricing.Recompute(lines, inv.DiscountAmount, inv.DiscountPercent, inv.VATMode, inv.VATRate)

	for i := range items {
		items[i].LineTotal = totals.LineTotals[i]
		if err := tx.Model(&items[i]).Update("line_total", items[i].LineTotal).Error; err != nil {
			return err
		}
	}
	inv.Items = items
	inv.Subtotal = totals.Subtotal
	inv.DiscountApplied = totals.DiscountApplied
	inv.VATAmount = totals.VATAmount
	inv.Total = totals.Total
	return tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).Updates(map[string]any{
		"discount_amount":  inv.DiscountAmount,
		"discount_percent": inv.DiscountPercent,
		"subtotal":         inv.Subtotal,
		"discount_applied": inv.DiscountApplied,
		"vat_amount":       inv.VATAmount,
		"total":            inv.Total,
	}).Error
}
