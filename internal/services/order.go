package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gate "github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/go-gate"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// unassignedBranch is stored when factory staff leave the branch empty.
const unassignedBranch = "-"

// OrderInput carries the editable order fields. Branch and Status are only
// honoured for factory actors.
type OrderInput struct {
	OrderNo   string
	Branch    string
	Status    string
	Notes     string
	OrderDate time.Time
}

// GarmentInput describes one order item; Category is normalized.
type GarmentInput struct {
	Category string
	models.GarmentSpec
}

// OrderFilter narrows ListOrders. Query matches order number, branch, notes or id.
type OrderFilter struct {
	Status string
	Branch string
	Query  string
	Limit  int
	Offset int
}

// OrderService drives production orders and their items.
type OrderService struct {
	db    *gorm.DB
	guard guard
	log   *zap.Logger
	now   func() time.Time
}

func NewOrderService(conn *gorm.DB, g *gate.Gate[policy.Actor], log *zap.Logger) *OrderService {
	return &OrderService{db: conn, guard: guard{gate: g}, log: log, now: time.Now}
}

// CanEdit reports whether the actor may still change o.
func (s *OrderService) CanEdit(ctx context.Context, a policy.Actor, o *models.Order) bool {
	return s.guard.gate.CanMutate(ctx, a, policy.ResourceOrder, o)
}

func (s *OrderService) load(ctx context.Context, tx *gorm.DB, a policy.Actor, id uint, action gate.Action) (*models.Order, error) {
	var o models.Order
	if err := tx.First(&o, id).Error; err != nil {
		return nil, notFound(err, "order")
	}
	if err := s.guard.authorize(ctx, a, action, policy.ResourceOrder, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// resolveBranch maps a free-text branch name onto a configured branch id.
func resolveBranch(tx *gorm.DB, name string) (*uint, error) {
	if name == "" || name == unassignedBranch {
		return nil, nil
	}
	var b models.Branch
	err := tx.Where("name = ?", name).Order("id").First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b.ID, nil
}

// CreateOrder opens a new order. Retail orders always belong to the actor's
// branch and start as DRAFT.
func (s *OrderService) CreateOrder(ctx context.Context, a policy.Actor, in OrderInput) (*models.Order, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	orderNo := strings.TrimSpace(in.OrderNo)
	if orderNo == "" {
		return nil, fmt.Errorf("order_no required: %w", ErrInvalidInput)
	}
	o := models.Order{
		OrderNo:   orderNo,
		Notes:     strings.TrimSpace(in.Notes),
		OrderDate: in.OrderDate,
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = s.now()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsRetail() {
			if err := s.guard.authorize(ctx, a, gate.ActionCreate, policy.ResourceOrder, policy.BranchScope(a.BranchID)); err != nil {
				return err
			}
			var b models.Branch
			if err := tx.First(&b, a.BranchID).Error; err != nil {
				return notFound(err, "branch")
			}
			branchID := b.ID
			o.Branch = b.DisplayName()
			o.BranchID = &branchID
			o.Status = models.OrderStatusDraft
		} else {
			if err := s.guard.authorize(ctx, a, gate.ActionCreate, policy.ResourceOrder, nil); err != nil {
				return err
			}
			o.Branch = orDefault(in.Branch, unassignedBranch)
			id, err := resolveBranch(tx, o.Branch)
			if err != nil {
				return err
			}
			o.BranchID = id
			o.Status = models.NormalizeOrderStatus(in.Status)
		}
		return tx.Create(&o).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("order created", zap.Uint("order_id", o.ID), zap.String("order_no", o.OrderNo), zap.String("branch", o.Branch))
	return &o, nil
}

// UpdateOrder edits an order. Factory may change number, branch, status and
// notes at any status (an invalid status keeps the current one). Retail may
// change number and notes while the order is DRAFT.
func (s *OrderService) UpdateOrder(ctx context.Context, a policy.Actor, id uint, in OrderInput) (*models.Order, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	orderNo := strings.TrimSpace(in.OrderNo)
	if orderNo == "" {
		return nil, fmt.Errorf("order_no required: %w", ErrInvalidInput)
	}
	var o *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if o, err = s.load(ctx, tx, a, id, gate.ActionUpdate); err != nil {
			return err
		}
		o.OrderNo = orderNo
		o.Notes = strings.TrimSpace(in.Notes)
		if a.IsFactory() {
			if st, ok := models.ParseOrderStatus(in.Status); ok {
				o.Status = st
			}
			if name := strings.TrimSpace(in.Branch); name != "" && name != o.Branch {
				o.Branch = name
				if o.BranchID, err = resolveBranch(tx, name); err != nil {
					return err
				}
			}
			if !in.OrderDate.IsZero() {
				o.OrderDate = in.OrderDate
			}
		}
		return tx.Model(&models.Order{}).Where("id = ?", o.ID).Updates(map[string]any{
			"order_no":   o.OrderNo,
			"notes":      o.Notes,
			"status":     o.Status,
			"branch":     o.Branch,
			"branch_id":  o.BranchID,
			"order_date": o.OrderDate,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteOrder removes an order and its items.
func (s *OrderService) DeleteOrder(ctx context.Context, a policy.Actor, id uint) error {
	if !a.Authenticated() {
		return ErrUnauthenticated
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.load(ctx, tx, a, id, gate.ActionDelete)
		if err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", o.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, o.ID).Error
	})
	if err != nil {
		return err
	}
	s.log.Info("order deleted", zap.Uint("order_id", id))
	return nil
}

// AddOrderItem appends a garment to an order. Attributes of the other
// category are dropped.
func (s *OrderService) AddOrderItem(ctx context.Context, a policy.Actor, orderID uint, in GarmentInput) (*models.OrderItem, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	category := models.NormalizeCategory(in.Category)
	item := models.OrderItem{
		OrderID:     orderID,
		Category:    category,
		GarmentSpec: in.GarmentSpec.ForCategory(category),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.load(ctx, tx, a, orderID, gate.ActionUpdate); err != nil {
			return err
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteOrderItem removes one item of an order.
func (s *OrderService) DeleteOrderItem(ctx context.Context, a policy.Actor, orderID, itemID uint) error {
	if !a.Authenticated() {
		return ErrUnauthenticated
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.load(ctx, tx, a, orderID, gate.ActionUpdate); err != nil {
			return err
		}
		res := tx.Where("id = ? AND order_id = ?", itemID, orderID).Delete(&models.OrderItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order item: %w", ErrNotFound)
		}
		return nil
	})
}

// GetOrder returns an order with its items.
func (s *OrderService) GetOrder(ctx context.Context, a policy.Actor, id uint) (*models.Order, error) {
	if !a.Authenticated() {
		return nil, ErrUnauthenticated
	}
	var o models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&o, id).Error
	if err != nil {
		return nil, notFound(err, "order")
	}
	if err := s.guard.authorize(ctx, a, gate.ActionView, policy.ResourceOrder, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListOrders returns matching orders newest first, with items. Retail actors
// only ever see their own branch.
func (s *OrderService) ListOrders(ctx context.Context, a policy.Actor, f OrderFilter) ([]models.Order, int64, error) {
	if !a.Authenticated() {
		return nil, 0, ErrUnauthenticated
	}
	if err := s.guard.authorize(ctx, a, gate.ActionList, policy.ResourceOrder, nil); err != nil {
		return nil, 0, err
	}
	q := s.db.WithContext(ctx).Model(&models.Order{})
	if a.IsRetail() {
		q = q.Where("branch_id = ?", a.BranchID)
	} else if b := strings.TrimSpace(f.Branch); b != "" {
		q = q.Where("branch = ?", b)
	}
	if st, ok := models.ParseOrderStatus(f.Status); ok {
		q = q.Where("status = ?", st)
	}
	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + term + "%"
		q = q.Where("(order_no LIKE ? OR branch LIKE ? OR notes LIKE ? OR CAST(id AS TEXT) LIKE ?)", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []models.Order
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id desc").Limit(limit).Offset(f.Offset).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
