package document

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	quotesSheet = "Quotes"
	itemsSheet  = "Items"
)

// QuoteHistoryXLSX writes one row per quote and one row per line item.
func QuoteHistoryXLSX(quotes []Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", quotesSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("create items sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	quoteHeader := []any{"Quote", "Date", "Customer", "Number", "Status", "Items", "Total"}
	itemHeader := []any{"Quote", "Item", "Quantity", "Rate", "Amount"}
	if err := writeHeader(f, quotesSheet, quoteHeader, bold); err != nil {
		return nil, err
	}
	if err := writeHeader(f, itemsSheet, itemHeader, bold); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, q := range quotes {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			shortID(q.ID),
			q.CreatedAt.Format(dateLayout),
			q.Customer.Name,
			q.Customer.Number,
			q.Status,
			len(q.Lines),
			q.Total.InexactFloat64(),
		}
		if err := f.SetSheetRow(quotesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write quote row: %w", err)
		}

		for _, line := range q.Lines {
			cell, _ := excelize.CoordinatesToCellName(1, itemRow)
			row := []any{
				shortID(q.ID),
				line.Label,
				line.Quantity,
				line.Price.InexactFloat64(),
				line.Total.InexactFloat64(),
			}
			if err := f.SetSheetRow(itemsSheet, cell, &row); err != nil {
				return nil, fmt.Errorf("write item row: %w", err)
			}
			itemRow++
		}
	}

	f.SetColWidth(quotesSheet, "A", "G", 16)
	f.SetColWidth(itemsSheet, "B", "B", 32)
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, header []any, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return nil
}
