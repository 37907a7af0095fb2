// Package importitems parses line-item CSV uploads into document items.
package importitems

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bildev/facturepro/internal/document"
	enc "github.com/bildev/facturepro/internal/encoding"
)

// LineError records a row that could not be parsed. Good rows around it are
// still returned.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Parse reads a semicolon-separated CSV of document items:
//
//	description;quantity;unit price
//
// A header row is skipped when the first column reads like one. Numbers
// accept the French convention (comma decimal separator, dot thousands
// separator). The input may be any encoding NewUTF8Reader understands.
func Parse(r io.Reader) ([]document.Item, []LineError, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	var (
		items    []document.Item
		lineErrs []LineError
	)

	for i, row := range rows {
		lineNum := i + 1

		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		if i == 0 && isHeader(row) {
			continue
		}

		item, err := parseRow(row)
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: lineNum, Err: err})
			continue
		}

		items = append(items, item)
	}

	return items, lineErrs, nil
}

func isHeader(row []string) bool {
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "description" || first == "désignation" || first == "libellé"
}

func parseRow(row []string) (document.Item, error) {
	if len(row) < 3 {
		return document.Item{}, fmt.Errorf("expected 3 columns, got %d", len(row))
	}

	desc := strings.TrimSpace(row[0])
	if desc == "" {
		return document.Item{}, fmt.Errorf("empty description")
	}

	qty, err := parseFrenchNumber(row[1])
	if err != nil {
		return document.Item{}, fmt.Errorf("quantity: %w", err)
	}

	price, err := parseFrenchNumber(row[2])
	if err != nil {
		return document.Item{}, fmt.Errorf("unit price: %w", err)
	}

	if qty < 0 || price < 0 {
		return document.Item{}, fmt.Errorf("negative quantity or unit price")
	}

	return document.Item{Description: desc, Quantity: qty, UnitPrice: price}, nil
}

// parseFrenchNumber parses "1.234,56" or "1 234,56" style numbers. Plain
// "12.5" decimal-dot input is accepted as-is.
func parseFrenchNumber(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}
