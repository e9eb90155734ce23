package services

import (
	"fmt"
	"time"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"gorm.io/gorm"
)

// SyncNote is the back-reference written on projected orders.
func SyncNote(invoiceNo string) string {
	return fmt.Sprintf("Auto-created from invoice %s", invoiceNo)
}

// projectCustomItems turns the CUSTOM lines of a just-finalized invoice into
// one production order. It must only run inside the finalize transaction,
// after the DRAFT -> FINALIZED flip succeeded; the unique source_invoice_id
// rejects a second projection for the same invoice. inv.Items must hold the
// current items.
func projectCustomItems(tx *gorm.DB, inv *models.Invoice, now time.Time) (*models.Order, error) {
	var custom []*models.InvoiceItem
	for i := range inv.Items {
		if inv.Items[i].ItemType == models.ItemTypeCustom {
			custom = append(custom, &inv.Items[i])
		}
	}
	if len(custom) == 0 {
		return nil, nil
	}

	var branch models.Branch
	if err := tx.First(&branch, inv.BranchID).Error; err != nil {
		return nil, notFound(err, "branch")
	}
	branchID, invoiceID := inv.BranchID, inv.ID
	order := models.Order{
		OrderNo:         inv.InvoiceNo,
		Branch:          branch.DisplayName(),
		BranchID:        &branchID,
		OrderDate:       now,
		Status:          models.OrderStatusSentToFactory,
		Notes:           SyncNote(inv.InvoiceNo),
		SourceInvoiceID: &invoiceID,
	}
	if err := tx.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order from %s: %w", inv.InvoiceNo, err)
	}

	order.Items = make([]models.OrderItem, 0, len(custom))
	for _, it := range custom {
		oi := models.OrderItem{
			OrderID:     order.ID,
			Category:    it.Category,
			GarmentSpec: it.GarmentSpec.ForCategory(it.Category),
		}
		if err := tx.Create(&oi).Error; err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		orderID, orderItemID := order.ID, oi.ID
		if err := tx.Model(&models.InvoiceItem{}).Where("id = ?", it.ID).Updates(map[string]any{
			"linked_order_id":      orderID,
			"linked_order_item_id": orderItemID,
			"sync_status":          models.SyncStatusSynced,
		}).Error; err != nil {
			return nil, err
		}
		it.LinkedOrderID = &orderID
		it.LinkedOrderItemID = &orderItemID
		it.SyncStatus = models.SyncStatusSynced
		order.Items = append(order.Items, oi)
	}
	return &order, nil
}
