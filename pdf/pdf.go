// Package pdf turns a fully resolved invoice into a byte stream. It is a pure
// projection: nothing here writes back into the domain.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"invoicing-backend/models"

	"github.com/jung-kurt/gofpdf"
)

// Render produces a one-page A4 PDF for the invoice. The client block is
// taken from the denormalized snapshot the invoice carries.
func Render(inv models.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(inv.InvoiceNumber, true)
	doc.AddPage()

	// Header
	doc.SetFont("Helvetica", "B", 20)
	doc.Cell(120, 10, "INVOICE")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 10, inv.InvoiceNumber, "", 1, "R", false, 0, "")
	doc.Ln(4)

	// Client block + dates
	doc.SetFont("Helvetica", "B", 10)
	doc.Cell(95, 6, "Billed to")
	doc.CellFormat(0, 6, "Status: "+strings.ToUpper(string(inv.Status)), "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, line := range []string{inv.Client.Name, inv.Client.Company, inv.Client.Address, inv.Client.Email} {
		if line == "" {
			continue
		}
		doc.Cell(0, 5, line)
		doc.Ln(5)
	}
	doc.Ln(2)
	doc.Cell(0, 5, "Issue date: "+inv.IssueDate)
	doc.Ln(5)
	if inv.DueDate != "" {
		doc.Cell(0, 5, "Due date: "+inv.DueDate)
		doc.Ln(5)
	}
	doc.Ln(6)

	// Line items
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(100, 7, "Description", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(30, 7, "Rate", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, item := range inv.LineItems {
		doc.CellFormat(100, 7, item.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 7, trimZeros(item.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, money(item.Rate), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 7, money(item.Amount), "1", 1, "R", false, 0, "")
	}

	// Totals
	doc.Ln(3)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(155, 6, "Subtotal", "", 0, "R", false, 0, "")
	doc.CellFormat(35, 6, money(inv.Subtotal), "", 1, "R", false, 0, "")
	doc.CellFormat(155, 6, "Tax", "", 0, "R", false, 0, "")
	doc.CellFormat(35, 6, money(inv.Tax), "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(155, 7, "Total", "", 0, "R", false, 0, "")
	doc.CellFormat(35, 7, money(inv.Total), "", 1, "R", false, 0, "")

	if inv.Notes != "" {
		doc.Ln(8)
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(0, 5, inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func trimZeros(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
