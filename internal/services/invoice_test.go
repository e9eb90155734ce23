package services

import (
	"errors"
	"testing"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s got %s", want, got)
}

func addItem(t *testing.T, f *fixture, a policy.Actor, invoiceID uint, in ItemInput) *models.InvoiceItem {
	t.Helper()
	item, err := f.invoices.AddItem(ctx, a, invoiceID, in)
	require.NoError(t, err)
	return item
}

func TestCreateInvoice_SequentialNumbersSurviveSoftDelete(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()

	first, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	second, err := f.invoices.CreateInvoice(ctx, factory, 2)
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", first.InvoiceNo)
	assert.Equal(t, "INV-000002", second.InvoiceNo)
	assert.Equal(t, models.InvoiceStatusDraft, first.Status)

	require.NoError(t, f.invoices.DeleteInvoice(ctx, factory, second.ID))
	third, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	assert.Equal(t, "INV-000003", third.InvoiceNo)

	_, err = f.invoices.GetInvoice(ctx, factory, second.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvoice_SnapshotsBranchSettings(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()

	inv, err := f.invoices.CreateInvoice(ctx, factory, 4)
	require.NoError(t, err)
	assert.Equal(t, "AED", inv.CurrencyCode)
	assert.Equal(t, "included", inv.VATMode)
	assertMoney(t, "0.05", inv.VATRate)

	_, err = f.branches.Update(ctx, factory, 4, BranchSettings{
		Name:         "Sharjah",
		CurrencyCode: "usd",
		VATMode:      "excluded",
		VATRate:      dec("0.15"),
	})
	require.NoError(t, err)

	got, err := f.invoices.GetInvoice(ctx, factory, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "AED", got.CurrencyCode)
	assert.Equal(t, "included", got.VATMode)
	assertMoney(t, "0.05", got.VATRate)

	next, err := f.invoices.CreateInvoice(ctx, factory, 4)
	require.NoError(t, err)
	assert.Equal(t, "USD", next.CurrencyCode)
	assert.Equal(t, "excluded", next.VATMode)
	assertMoney(t, "0.15", next.VATRate)
}

func TestCreateInvoice_UnknownBranch(t *testing.T) {
	f := newFixture(t)
	_, err := f.invoices.CreateInvoice(ctx, policy.Factory(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecalculate_ExcludedVAT(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	_, err := f.branches.Update(ctx, factory, 2, BranchSettings{Name: "Ajman", VATMode: "excluded", VATRate: dec("0.05")})
	require.NoError(t, err)

	inv, err := f.invoices.CreateInvoice(ctx, factory, 2)
	require.NoError(t, err)
	first := addItem(t, f, factory, inv.ID, ItemInput{ItemType: "ready", Quantity: dec("3"), UnitPrice: dec("100.00"), DiscountPercent: dec("10")})
	assertMoney(t, "0", first.LineTotal)

	for range 2 {
		got, err := f.invoices.Recalculate(ctx, factory, inv.ID, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assertMoney(t, "270.00", got.Subtotal)
		assertMoney(t, "13.50", got.VATAmount)
		assertMoney(t, "283.50", got.Total)
		require.Len(t, got.Items, 1)
		assertMoney(t, "270.00", got.Items[0].LineTotal)
	}
}

func TestRecalculate_IncludedWithDiscount(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	inv, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	addItem(t, f, factory, inv.ID, ItemInput{Quantity: dec("1"), UnitPrice: dec("120")})
	addItem(t, f, factory, inv.ID, ItemInput{Quantity: dec("2"), UnitPrice: dec("40")})

	got, err := f.invoices.Recalculate(ctx, factory, inv.ID, dec("20"), decimal.Zero)
	require.NoError(t, err)
	assertMoney(t, "200.00", got.Subtotal)
	assertMoney(t, "20.00", got.DiscountApplied)
	assertMoney(t, "180.00", got.Total)
	assertMoney(t, "8.57", got.VATAmount)

	stored, err := f.invoices.GetInvoice(ctx, factory, inv.ID)
	require.NoError(t, err)
	assertMoney(t, "20", stored.DiscountAmount)
	assertMoney(t, "180.00", stored.Total)
}

func TestAddItem_NormalizesInput(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	inv, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)

	item := addItem(t, f, factory, inv.ID, ItemInput{
		ItemType: "bespoke",
		Category: "sheila",
		GarmentSpec: models.GarmentSpec{
			ModelNumber:  " S-7 ",
			SheilaFabric: "Crepe",
			AbayaFabric:  "Nida",
		},
		Quantity:  dec("-3"),
		UnitPrice: dec("45"),
	})
	assert.Equal(t, models.ItemTypeReady, item.ItemType)
	assert.Equal(t, models.CategorySheila, item.Category)
	assert.Equal(t, "S-7", item.ModelNumber)
	assert.Equal(t, "Crepe", item.SheilaFabric)
	assert.Empty(t, item.AbayaFabric)
	assertMoney(t, "1", item.Quantity)
}

func TestAddItem_StoresMoneyAtColumnPrecision(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	inv, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)

	cheap := addItem(t, f, factory, inv.ID, ItemInput{Quantity: dec("3"), UnitPrice: dec("0.333")})
	free := addItem(t, f, factory, inv.ID, ItemInput{
		Quantity:        dec("1.23456"),
		UnitPrice:       dec("10"),
		DiscountAmount:  dec("-5"),
		DiscountPercent: dec("1500"),
	})

	var stored []models.InvoiceItem
	require.NoError(t, f.db.Where("invoice_id = ?", inv.ID).Order("id").Find(&stored).Error)
	require.Len(t, stored, 2)
	assert.Equal(t, cheap.ID, stored[0].ID)
	assertMoney(t, "0.33", stored[0].UnitPrice)
	assert.Equal(t, free.ID, stored[1].ID)
	assertMoney(t, "1.235", stored[1].Quantity)
	assertMoney(t, "0", stored[1].DiscountAmount)
	assertMoney(t, "100", stored[1].DiscountPercent)

	got, err := f.invoices.Recalculate(ctx, factory, inv.ID, dec("0.005"), dec("250"))
	require.NoError(t, err)
	assertMoney(t, "0.99", got.Items[0].LineTotal)
	assertMoney(t, "0", got.Items[1].LineTotal)
	assertMoney(t, "0.01", got.DiscountAmount)
	assertMoney(t, "100", got.DiscountPercent)
	assertMoney(t, "0", got.Total)
}

func TestDeleteItem_MustBelongToInvoice(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	a, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	b, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	item := addItem(t, f, factory, a.ID, ItemInput{Quantity: dec("1"), UnitPrice: dec("10")})

	assert.ErrorIs(t, f.invoices.DeleteItem(ctx, factory, b.ID, item.ID), ErrNotFound)
	require.NoError(t, f.invoices.DeleteItem(ctx, factory, a.ID, item.ID))
	assert.ErrorIs(t, f.invoices.DeleteItem(ctx, factory, a.ID, item.ID), ErrNotFound)
}

func TestFinalize_ProjectsCustomItemsOnce(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	_, err := f.branches.Update(ctx, factory, 3, BranchSettings{Name: "Deira", VATRate: dec("0.05")})
	require.NoError(t, err)

	retail := policy.Retail(3)
	inv, err := f.invoices.CreateInvoice(ctx, retail, 3)
	require.NoError(t, err)
	sheila := addItem(t, f, retail, inv.ID, ItemInput{
		ItemType:    "CUSTOM",
		Category:    "SHEILA",
		GarmentSpec: models.GarmentSpec{ModelNumber: "S-1", Color: "Black", SheilaFabric: "Crepe", HeightCM: "180", WidthCM: "70"},
		Quantity:    dec("1"),
		UnitPrice:   dec("60"),
	})
	abaya := addItem(t, f, retail, inv.ID, ItemInput{
		ItemType:    "CUSTOM",
		Category:    "ABAYA",
		GarmentSpec: models.GarmentSpec{ModelNumber: "A-9", AbayaFabric: "Nida", Size: "54", Logo: "yes"},
		Quantity:    dec("1"),
		UnitPrice:   dec("240"),
	})
	ready := addItem(t, f, retail, inv.ID, ItemInput{ItemType: "READY", Quantity: dec("2"), UnitPrice: dec("50")})

	got, order, err := f.invoices.Finalize(ctx, retail, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusFinalized, got.Status)
	require.NotNil(t, got.FinalizedAt)
	assertMoney(t, "400.00", got.Total)

	require.NotNil(t, order)
	assert.Equal(t, inv.InvoiceNo, order.OrderNo)
	assert.Equal(t, "Deira", order.Branch)
	require.NotNil(t, order.BranchID)
	assert.EqualValues(t, 3, *order.BranchID)
	assert.Equal(t, models.OrderStatusSentToFactory, order.Status)
	assert.Equal(t, "Auto-created from invoice "+inv.InvoiceNo, order.Notes)
	require.NotNil(t, order.SourceInvoiceID)
	assert.Equal(t, inv.ID, *order.SourceInvoiceID)

	stored, err := f.orders.GetOrder(ctx, factory, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, models.CategorySheila, stored.Items[0].Category)
	assert.Equal(t, "180", stored.Items[0].HeightCM)
	assert.Equal(t, models.CategoryAbaya, stored.Items[1].Category)
	assert.Equal(t, "54", stored.Items[1].Size)

	reread, err := f.invoices.GetInvoice(ctx, factory, inv.ID)
	require.NoError(t, err)
	byID := map[uint]models.InvoiceItem{}
	for _, it := range reread.Items {
		byID[it.ID] = it
	}
	for i, id := range []uint{sheila.ID, abaya.ID} {
		it := byID[id]
		assert.Equal(t, models.SyncStatusSynced, it.SyncStatus)
		require.NotNil(t, it.LinkedOrderID)
		assert.Equal(t, order.ID, *it.LinkedOrderID)
		require.NotNil(t, it.LinkedOrderItemID)
		assert.Equal(t, stored.Items[i].ID, *it.LinkedOrderItemID)
	}
	assert.Nil(t, byID[ready.ID].LinkedOrderID)
	assert.Empty(t, byID[ready.ID].SyncStatus)

	_, _, err = f.invoices.Finalize(ctx, factory, inv.ID)
	assert.ErrorIs(t, err, ErrInvoiceLocked)
	assert.ErrorIs(t, err, ErrForbidden)

	var orders int64
	require.NoError(t, f.db.Model(&models.Order{}).Where("source_invoice_id = ?", inv.ID).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}

func TestFinalize_RollsBackWhenProjectionFails(t *testing.T) {
	f := newFixture(t)
	retail := policy.Retail(2)
	inv, err := f.invoices.CreateInvoice(ctx, retail, 2)
	require.NoError(t, err)
	for _, model := range []string{"A-1", "A-2", "A-3"} {
		addItem(t, f, retail, inv.ID, ItemInput{
			ItemType:    "CUSTOM",
			GarmentSpec: models.GarmentSpec{ModelNumber: model},
			Quantity:    dec("1"),
			UnitPrice:   dec("100"),
		})
	}

	const hook = "test:fail_second_order_item"
	inserts := 0
	require.NoError(t, f.db.Callback().Create().Before("gorm:create").Register(hook, func(tx *gorm.DB) {
		if tx.Statement.Table != "order_items" {
			return
		}
		if inserts++; inserts == 2 {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, order, err := f.invoices.Finalize(ctx, retail, inv.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Nil(t, order)

	got, err := f.invoices.GetInvoice(ctx, retail, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusDraft, got.Status)
	assert.Nil(t, got.FinalizedAt)
	for _, it := range got.Items {
		assert.Nil(t, it.LinkedOrderID)
		assert.Nil(t, it.LinkedOrderItemID)
	}
	var orders, orderItems int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, f.db.Model(&models.OrderItem{}).Count(&orderItems).Error)
	assert.Zero(t, orders)
	assert.Zero(t, orderItems)

	require.NoError(t, f.db.Callback().Create().Remove(hook))
	_, order, err = f.invoices.Finalize(ctx, retail, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Len(t, order.Items, 3)
}

func TestFinalize_NoCustomItemsCreatesNoOrder(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	inv, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	addItem(t, f, factory, inv.ID, ItemInput{ItemType: "LOCAL_CUSTOM", Quantity: dec("1"), UnitPrice: dec("80")})
	addItem(t, f, factory, inv.ID, ItemInput{ItemType: "READY", Quantity: dec("1"), UnitPrice: dec("20")})

	got, order, err := f.invoices.Finalize(ctx, factory, inv.ID)
	require.NoError(t, err)
	assert.Nil(t, order)
	assertMoney(t, "100.00", got.Total)

	var orders int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestFinalize_RecomputesWithStoredDiscount(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	inv, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	addItem(t, f, factory, inv.ID, ItemInput{Quantity: dec("1"), UnitPrice: dec("100")})
	_, err = f.invoices.Recalculate(ctx, factory, inv.ID, decimal.Zero, dec("10"))
	require.NoError(t, err)

	// Added after the last recalculation, still priced at finalize.
	addItem(t, f, factory, inv.ID, ItemInput{Quantity: dec("1"), UnitPrice: dec("100")})

	got, _, err := f.invoices.Finalize(ctx, factory, inv.ID)
	require.NoError(t, err)
	assertMoney(t, "200.00", got.Subtotal)
	assertMoney(t, "20.00", got.DiscountApplied)
	assertMoney(t, "180.00", got.Total)
}

func TestFinalizedInvoiceIsLocked(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	inv, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	item := addItem(t, f, factory, inv.ID, ItemInput{Quantity: dec("1"), UnitPrice: dec("10")})
	_, _, err = f.invoices.Finalize(ctx, factory, inv.ID)
	require.NoError(t, err)

	_, err = f.invoices.SaveHeader(ctx, factory, inv.ID, HeaderInput{CustomerName: "Late"})
	assert.ErrorIs(t, err, ErrInvoiceLocked)
	_, err = f.invoices.AddItem(ctx, factory, inv.ID, ItemInput{Quantity: dec("1")})
	assert.ErrorIs(t, err, ErrInvoiceLocked)
	assert.ErrorIs(t, f.invoices.DeleteItem(ctx, factory, inv.ID, item.ID), ErrInvoiceLocked)
	_, err = f.invoices.Recalculate(ctx, factory, inv.ID, dec("5"), decimal.Zero)
	assert.ErrorIs(t, err, ErrInvoiceLocked)
	assert.ErrorIs(t, f.invoices.DeleteInvoice(ctx, factory, inv.ID), ErrInvoiceLocked)

	got, err := f.invoices.GetInvoice(ctx, factory, inv.ID)
	require.NoError(t, err)
	assertMoney(t, "10.00", got.Total)
	assert.False(t, f.invoices.CanEdit(ctx, factory, got))
}

func TestInvoice_RetailBranchScope(t *testing.T) {
	f := newFixture(t)
	own := policy.Retail(5)
	other := policy.Retail(6)

	_, err := f.invoices.CreateInvoice(ctx, own, 6)
	assert.ErrorIs(t, err, ErrForbidden)

	inv, err := f.invoices.CreateInvoice(ctx, own, 5)
	require.NoError(t, err)
	assert.True(t, f.invoices.CanEdit(ctx, own, inv))
	assert.False(t, f.invoices.CanEdit(ctx, other, inv))

	_, err = f.invoices.GetInvoice(ctx, other, inv.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.invoices.AddItem(ctx, other, inv.ID, ItemInput{Quantity: dec("1")})
	assert.ErrorIs(t, err, ErrForbidden)
	_, _, err = f.invoices.Finalize(ctx, other, inv.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.invoices.GetInvoice(ctx, policy.Factory(), inv.ID)
	assert.NoError(t, err)
}

func TestInvoice_Unauthenticated(t *testing.T) {
	f := newFixture(t)
	var anon policy.Actor
	_, err := f.invoices.CreateInvoice(ctx, anon, 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, _, err = f.invoices.Finalize(ctx, anon, 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = f.invoices.GetInvoice(ctx, policy.Actor{Role: policy.RoleRetail}, 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSaveHeader_UpsertsCustomerByPhone(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	first, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	second, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)

	got, err := f.invoices.SaveHeader(ctx, factory, first.ID, HeaderInput{
		CustomerName:  " Mariam ",
		CustomerPhone: "+971 50-123 4567",
		Terms:         "50% advance",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mariam", got.CustomerName)
	assert.Equal(t, "50% advance", got.Terms)

	_, err = f.invoices.SaveHeader(ctx, factory, second.ID, HeaderInput{CustomerPhone: "+971501234567"})
	require.NoError(t, err)

	var customers []models.Customer
	require.NoError(t, f.db.Find(&customers).Error)
	require.Len(t, customers, 1)
	assert.Equal(t, "+971501234567", customers[0].Phone)
	assert.Equal(t, "Mariam", customers[0].Name)

	c, err := f.customers.Lookup(ctx, factory, "+971 (50) 123-4567")
	require.NoError(t, err)
	assert.Equal(t, "Mariam", c.Name)

	_, err = f.customers.Lookup(ctx, factory, "n/a")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.customers.Lookup(ctx, factory, "0500000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItem_RecordsLastPrice(t *testing.T) {
	f := newFixture(t)
	retail := policy.Retail(2)
	inv, err := f.invoices.CreateInvoice(ctx, retail, 2)
	require.NoError(t, err)

	spec := models.GarmentSpec{ModelNumber: "A-12"}
	addItem(t, f, retail, inv.ID, ItemInput{Category: "ABAYA", GarmentSpec: spec, Quantity: dec("1"), UnitPrice: dec("150")})
	addItem(t, f, retail, inv.ID, ItemInput{Category: "ABAYA", GarmentSpec: spec, Quantity: dec("1"), UnitPrice: dec("165.50")})
	addItem(t, f, retail, inv.ID, ItemInput{Category: "SHEILA", GarmentSpec: spec, Quantity: dec("1"), UnitPrice: dec("30")})

	e, err := f.prices.Lookup(ctx, retail, 2, "abaya", "A-12")
	require.NoError(t, err)
	assertMoney(t, "165.50", e.LastUnitPrice)

	e, err = f.prices.Lookup(ctx, retail, 2, "SHEILA", "A-12")
	require.NoError(t, err)
	assertMoney(t, "30", e.LastUnitPrice)

	var entries int64
	require.NoError(t, f.db.Model(&models.PriceBookEntry{}).Count(&entries).Error)
	assert.EqualValues(t, 2, entries)

	_, err = f.prices.Lookup(ctx, policy.Retail(1), 2, "ABAYA", "A-12")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.prices.Lookup(ctx, retail, 2, "ABAYA", "Z-0")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPayment(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	inv, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	addItem(t, f, factory, inv.ID, ItemInput{Quantity: dec("1"), UnitPrice: dec("300")})
	_, _, err = f.invoices.Finalize(ctx, factory, inv.ID)
	require.NoError(t, err)

	p, err := f.invoices.RecordPayment(ctx, factory, inv.ID, PaymentInput{Method: " Cash ", Amount: dec("100.005")})
	require.NoError(t, err)
	assert.Equal(t, "cash", p.Method)
	assertMoney(t, "100.01", p.Amount)
	assert.True(t, p.PaymentDate.Equal(fixedNow))

	_, err = f.invoices.RecordPayment(ctx, factory, inv.ID, PaymentInput{Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.invoices.RecordPayment(ctx, policy.Retail(2), inv.ID, PaymentInput{Amount: dec("5")})
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := f.invoices.GetInvoice(ctx, factory, inv.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 1)
	assertMoney(t, "300.00", got.Total)
}

func TestProjection_RejectsSecondOrderForInvoice(t *testing.T) {
	f := newFixture(t)
	factory := policy.Factory()
	inv, err := f.invoices.CreateInvoice(ctx, factory, 1)
	require.NoError(t, err)
	addItem(t, f, factory, inv.ID, ItemInput{ItemType: "CUSTOM", Quantity: dec("1"), UnitPrice: dec("10")})
	got, order, err := f.invoices.Finalize(ctx, factory, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, order)

	err = f.db.Transaction(func(tx *gorm.DB) error {
		_, err := projectCustomItems(tx, got, fixedNow)
		return err
	})
	assert.Error(t, err)

	var orders int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}
