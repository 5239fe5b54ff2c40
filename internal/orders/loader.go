package orders

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"retrix/pkg/contracts/domain"
)

// ParseError reports an upload that could not be read at all: missing
// file, unreadable bytes, or fundamentally malformed delimited text.
// Per-cell problems never produce a ParseError; they degrade to
// missing values instead.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("parse order table: %v", e.Err)
	}
	return fmt.Sprintf("parse order table %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// columnIndices holds the position of each recognized column in the
// header, -1 when absent.
type columnIndices struct {
	orderID      int
	orderDate    int
	orderPrice   int
	orderStatus  int
	returnCost   int
	returnReason int
	catalogueID  int
	category     int
	sku          int
	quantity     int
}

// Load parses a CSV order export into a typed table. Columns outside
// the recognized schema are ignored; recognized columns may be absent.
func Load(r io.Reader) (*domain.Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read: %w", err)}
	}

	// Strip UTF-8 BOM; marketplace exports frequently carry one.
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("read csv: %w", err)}
	}

	return fromRecords(records), nil
}

// LoadFile parses a CSV or XLSX order export from disk. XLSX exports
// use the first sheet with the header in the first row.
func LoadFile(path string) (*domain.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" || ext == ".xls" {
		return loadExcel(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Source: filepath.Base(path), Err: err}
	}
	defer f.Close()

	table, err := Load(f)
	if err != nil {
		var pe *ParseError
		if ok := asParseError(err, &pe); ok {
			pe.Source = filepath.Base(path)
			return nil, pe
		}
		return nil, err
	}
	return table, nil
}

func asParseError(err error, target **ParseError) bool {
	pe, ok := err.(*ParseError)
	if ok {
		*target = pe
	}
	return ok
}

func loadExcel(path string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ParseError{Source: filepath.Base(path), Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Source: filepath.Base(path), Err: fmt.Errorf("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Source: filepath.Base(path), Err: err}
	}

	return fromRecords(rows), nil
}

// fromRecords builds the typed table from raw header+data rows.
func fromRecords(records [][]string) *domain.Table {
	table := &domain.Table{Present: make(map[string]bool)}
	if len(records) == 0 {
		return table
	}

	cols := findColumnIndices(records[0])
	markPresent(table, cols)

	for _, row := range records[1:] {
		if isEmptyRow(row) {
			continue
		}

		getString := func(idx int) string {
			if idx >= 0 && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}
		getFloat := func(idx int) float64 {
			cell := getString(idx)
			if cell == "" {
				return domain.Missing()
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
			if err != nil {
				return domain.Missing()
			}
			return v
		}

		table.Rows = append(table.Rows, domain.OrderRecord{
			OrderID:      getString(cols.orderID),
			OrderDate:    getString(cols.orderDate),
			OrderPrice:   getFloat(cols.orderPrice),
			OrderStatus:  getString(cols.orderStatus),
			ReturnCost:   getFloat(cols.returnCost),
			ReturnReason: getString(cols.returnReason),
			CatalogueID:  getFloat(cols.catalogueID),
			Category:     getString(cols.category),
			SKU:          getString(cols.sku),
			Quantity:     getFloat(cols.quantity),
		})
	}

	slog.Debug("order table loaded",
		slog.Int("rows", len(table.Rows)),
		slog.Int("columns", len(table.Present)))

	return table
}

// findColumnIndices maps recognized schema columns to header positions.
func findColumnIndices(header []string) columnIndices {
	cols := columnIndices{
		orderID:      -1,
		orderDate:    -1,
		orderPrice:   -1,
		orderStatus:  -1,
		returnCost:   -1,
		returnReason: -1,
		catalogueID:  -1,
		category:     -1,
		sku:          -1,
		quantity:     -1,
	}

	for i, col := range header {
		name := strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		switch strings.ToLower(name) {
		case domain.ColOrderID:
			cols.orderID = i
		case domain.ColOrderDate:
			cols.orderDate = i
		case domain.ColOrderPrice:
			cols.orderPrice = i
		case domain.ColOrderStatus:
			cols.orderStatus = i
		case domain.ColReturnCost:
			cols.returnCost = i
		case domain.ColReturnReason:
			cols.returnReason = i
		case domain.ColCatalogueID:
			cols.catalogueID = i
		case domain.ColCategory:
			cols.category = i
		case domain.ColSKU:
			cols.sku = i
		case domain.ColQuantity:
			cols.quantity = i
		}
	}

	return cols
}

func markPresent(t *domain.Table, cols columnIndices) {
	set := func(name string, idx int) {
		if idx >= 0 {
			t.Present[name] = true
		}
	}
	set(domain.ColOrderID, cols.orderID)
	set(domain.ColOrderDate, cols.orderDate)
	set(domain.ColOrderPrice, cols.orderPrice)
	set(domain.ColOrderStatus, cols.orderStatus)
	set(domain.ColReturnCost, cols.returnCost)
	set(domain.ColReturnReason, cols.returnReason)
	set(domain.ColCatalogueID, cols.catalogueID)
	set(domain.ColCategory, cols.category)
	set(domain.ColSKU, cols.sku)
	set(domain.ColQuantity, cols.quantity)
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
