// Package pdf renders documents into fixed-layout A4 printables.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/bildev/facturepro/internal/document"
)

// ErrRenderFailed wraps any failure of the underlying renderer. The output is
// all-or-nothing: a failed render produces no partial artifact.
var ErrRenderFailed = errors.New("pdf generation failed")

const (
	pageLeft       = 20.0
	printableWidth = 170.0
	lineHeight     = 5.0
	tableTop       = 110.0
	rowHeight      = 8.0
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func frenchDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// Renderer produces printable PDFs from documents. The layout uses absolute
// coordinates on a single fixed page size rather than reflowing content.
type Renderer struct {
	appName string
	now     func() time.Time
}

func NewRenderer(appName string) *Renderer {
	return &Renderer{appName: appName, now: time.Now}
}

// Filename returns the download name for the document's artifact:
// facture-{id}.pdf or devis-{id}.pdf, with a timestamp standing in when the
// document has no identifier.
func (r *Renderer) Filename(doc *document.Document) string {
	number := doc.ID
	if number == "" {
		number = r.now().Format("20060102150405")
	}

	return fmt.Sprintf("%s-%s.pdf", doc.Type.Slug(), number)
}

// Render produces the complete PDF for the document. Aside from the
// generation timestamp in the footer, the output depends only on the
// document's stored fields.
func (r *Renderer) Render(doc *document.Document) ([]byte, error) {
	now := r.now()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, pageHeight := pdf.GetPageSize()

	// App name header.
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.SetXY(0, 7)
	pdf.CellFormat(pageWidth, lineHeight, tr(r.appName), "", 0, "C", false, 0, "")

	// Document kind title.
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(44, 62, 80)

	title := "DEVIS"
	if doc.Type == document.TypeInvoice {
		title = "FACTURE"
	}

	pdf.Text(pageLeft, 30, title)

	// Status badge, invoices only.
	if doc.Type == document.TypeInvoice {
		pdf.SetFont("Helvetica", "", 14)

		if doc.Status == document.StatusPaid {
			pdf.SetTextColor(39, 174, 96)
			pdf.Text(150, 30, tr("PAYÉE"))
		} else {
			pdf.SetTextColor(243, 156, 18)
			pdf.Text(150, 30, "EN ATTENTE")
		}
	}

	// Issuer block (creation-time company snapshot).
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(pageLeft, 50, tr("ÉMETTEUR"))
	pdf.Text(pageLeft, 55, tr(doc.Company.Name))
	pdf.Text(pageLeft, 60, tr("SIREN: "+doc.Company.SIREN))
	pdf.Text(pageLeft, 65, tr(doc.Company.Address))
	pdf.Text(pageLeft, 70, tr(doc.Company.Phone))
	pdf.Text(pageLeft, 75, tr(doc.Company.Email))

	// Recipient block.
	pdf.Text(120, 50, "CLIENT")
	pdf.Text(120, 55, tr(doc.ClientName))
	pdf.Text(120, 60, tr(doc.ClientEmail))

	// Metadata block.
	pdf.Text(pageLeft, 90, tr("N° "+doc.ID))
	pdf.Text(pageLeft, 95, tr("Date: "+frenchDate(doc.Date)))

	if doc.Type == document.TypeInvoice {
		pdf.Text(pageLeft, 100, tr("Échéance: "+frenchDate(doc.DueDate)))
	}

	finalY := r.itemTable(pdf, tr, doc.Items)

	// Totals block, read from the stored precomputed fields and rounded to
	// 2 decimals at display only.
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(140, finalY, "Total HT:")
	rightAlign(pdf, tr, 140, finalY, fmt.Sprintf("%.2f €", doc.Subtotal))
	pdf.Text(140, finalY+5, tr(fmt.Sprintf("TVA (%g%%)", doc.VATRate)))
	rightAlign(pdf, tr, 140, finalY+5, fmt.Sprintf("%.2f €", doc.VATAmount))

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(140, finalY+15, "Total TTC:")
	rightAlign(pdf, tr, 140, finalY+15, fmt.Sprintf("%.2f €", doc.Total))

	// Notes block, wrapped to the printable width.
	if doc.Notes != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(pageLeft, finalY+25, "Notes:")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(pageLeft, finalY+27)
		pdf.MultiCell(printableWidth, 4, tr(doc.Notes), "", "L", false)
	}

	// Generation footer.
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(128, 128, 128)
	footer := fmt.Sprintf("Document généré par %s le %s", r.appName, now.Format("02/01/2006 à 15:04"))
	pdf.SetXY(0, pageHeight-13)
	pdf.CellFormat(pageWidth, lineHeight, tr(footer), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return buf.Bytes(), nil
}

// itemTable draws the line-item grid and returns the y position where the
// totals block starts. Line totals are computed at render time from quantity
// and unit price, never read from storage.
func (r *Renderer) itemTable(pdf *fpdf.Fpdf, tr func(string) string, items []document.Item) float64 {
	type column struct {
		title string
		width float64
		align string
	}

	columns := []column{
		{"Description", 60, "L"},
		{"Quantité", 30, "C"},
		{"Prix unitaire (€)", 40, "R"},
		{"Total (€)", 40, "R"},
	}

	pdf.SetXY(pageLeft, tableTop)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(44, 62, 80)
	pdf.SetTextColor(255, 255, 255)

	for _, col := range columns {
		pdf.CellFormat(col.width, rowHeight, tr(col.title), "1", 0, "C", true, 0, "")
	}

	pdf.Ln(rowHeight)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)

	for _, it := range items {
		cells := []string{
			it.Description,
			fmt.Sprintf("%g", it.Quantity),
			fmt.Sprintf("%.2f", it.UnitPrice),
			fmt.Sprintf("%.2f", it.Total()),
		}

		pdf.SetX(pageLeft)

		for i, col := range columns {
			pdf.CellFormat(col.width, rowHeight, tr(cells[i]), "1", 0, col.align, false, 0, "")
		}

		pdf.Ln(rowHeight)
	}

	return pdf.GetY() + 10
}

// rightAlign prints text right-aligned against the edge of the totals column.
func rightAlign(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, text string) {
	pdf.SetXY(x, y-lineHeight+1)
	pdf.CellFormat(30, lineHeight, tr(text), "", 0, "R", false, 0, "")
}
