// Package export renders production orders as an xlsx workbook.
package export

import (
	"fmt"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet = "Orders"
	ItemsSheet  = "Items"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	orderHeaders = []string{"ID", "Order No", "Branch", "Order Date", "Status", "Notes", "Items", "Source Invoice"}
	orderWidths  = []float64{8, 16, 20, 14, 18, 40, 8, 14}

	itemHeaders = []string{
		"Order ID", "Order No", "Category", "Model", "Color",
		"Sheila Fabric", "Height (cm)", "Width (cm)", "Logo Color",
		"Abaya Fabric", "Size", "Upper Width (cm)", "Lower Width (cm)", "Sleeve Width (cm)", "Sleeve Height (cm)", "Logo",
		"Note",
	}
)

// Filename is the download name for an export taken at the given date.
func Filename(date string) string {
	return fmt.Sprintf("orders_%s.xlsx", date)
}

// OrdersWorkbook builds a workbook with one row per order on the Orders sheet
// and one row per garment on the Items sheet. Orders must have Items loaded.
func OrdersWorkbook(orders []models.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}
	if err := writeHeader(f, OrdersSheet, orderHeaders, headerStyle); err != nil {
		return nil, err
	}
	if err := writeHeader(f, ItemsSheet, itemHeaders, headerStyle); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, o := range orders {
		source := ""
		if o.SourceInvoiceID != nil {
			source = fmt.Sprint(*o.SourceInvoiceID)
		}
		row := []any{o.ID, o.OrderNo, o.Branch, o.OrderDate.Format("2006-01-02"), string(o.Status), o.Notes, len(o.Items), source}
		if err := writeRow(f, OrdersSheet, i+2, row); err != nil {
			return nil, err
		}
		for _, it := range o.Items {
			if err := writeRow(f, ItemsSheet, itemRow, itemCells(o, it)); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	for i, w := range orderWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(OrdersSheet, col, col, w); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func itemCells(o models.Order, it models.OrderItem) []any {
	g := it.GarmentSpec
	return []any{
		o.ID, o.OrderNo, string(it.Category), g.ModelNumber, g.Color,
		g.SheilaFabric, g.HeightCM, g.WidthCM, g.LogoColor,
		g.AbayaFabric, g.Size, g.UpperWidthCM, g.LowerWidthCM, g.SleeveWidthCM, g.SleeveHeightCM, g.Logo,
		g.ExtraNote,
	}
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := writeRow(f, sheet, 1, cells); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetCellStyle(sheet, "A1", last+"1", style)
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, start, &cells)
}
