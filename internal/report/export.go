package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const inventorySheet = "Inventory"

var inventoryHeader = []interface{}{
	"SKU", "Name", "Type", "Category", "Manufacturer",
	"Price", "Cost", "Quantity", "Min Quantity", "Stock Value",
}

// ExportInventory renders the inventory report as an XLSX workbook.
func (s *Service) ExportInventory(ctx context.Context) ([]byte, error) {
	rows, err := s.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	return InventoryWorkbook(rows)
}

func InventoryWorkbook(rows []InventoryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), inventorySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(inventorySheet, "A1", &inventoryHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(inventorySheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			r.SKU, r.Name, Label(r.Type), r.Category, r.Manufacturer,
			r.Price, r.Cost, r.Quantity, r.MinQuantity, stockValue(r),
		}
		if err := f.SetSheetRow(inventorySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func stockValue(r InventoryRow) float64 {
	return decimal.NewFromFloat(r.Price).Mul(decimal.NewFromInt(int64(r.Quantity))).InexactFloat64()
}
