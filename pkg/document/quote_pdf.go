package document

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// QuotePDF renders a single quote on A4.
func QuotePDF(q Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(190, 10, "QUOTATION")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(95, 8, tr(q.Seller.Name))
	pdf.Cell(95, 8, "Quote for")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	y := pdf.GetY()
	pdf.MultiCell(90, 6, tr(joinLines(q.Seller.Number, q.Seller.Address)), "", "", false)
	pdf.SetXY(105, y)
	pdf.MultiCell(90, 6, tr(joinLines(q.Customer.Name, q.Customer.Number, q.Customer.Address)), "", "", false)
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(95, 6, "Quote No: "+shortID(q.ID))
	pdf.Cell(95, 6, "Date: "+q.CreatedAt.Format(dateLayout))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(95, 6, "Status: "+q.Status)
	pdf.Ln(10)

	// Line table
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(10, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, line := range q.Lines {
		pdf.CellFormat(10, 8, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(90, 8, tr(line.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, strconv.Itoa(line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, line.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, line.Total.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(155, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, q.Total.StringFixed(2), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func joinLines(parts ...string) string {
	var buf bytes.Buffer
	for _, p := range parts {
		if p == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(p)
	}
	return buf.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
