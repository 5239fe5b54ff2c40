package domain

import "math"

// Column names recognized in seller order exports. Any subset may be
// present in an upload; engines check Table.Has before using a column.
const (
	ColOrderID      = "order_id"
	ColOrderDate    = "order_date"
	ColOrderPrice   = "order_price"
	ColOrderStatus  = "order_status"
	ColReturnCost   = "return_cost"
	ColReturnReason = "return_reason"
	ColCatalogueID  = "catalogue_id"
	ColCategory     = "category"
	ColSKU          = "sku_description"
	ColQuantity     = "quantity"
)

// Order status values as they appear in marketplace exports. Anything
// else is carried through verbatim and ignored by status counters.
const (
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
	StatusReturned  = "returned"
)

// OrderRecord is one row of a seller's order export. String fields are
// empty when the column is absent; numeric fields are NaN when the
// column is absent or the cell failed to parse, so that aggregations
// can skip them the way the dashboard always has.
type OrderRecord struct {
	OrderID      string  `json:"order_id"`
	OrderDate    string  `json:"order_date"` // raw DD-MM-YYYY token, kept verbatim
	OrderPrice   float64 `json:"order_price"`
	OrderStatus  string  `json:"order_status"`
	ReturnCost   float64 `json:"return_cost"`
	ReturnReason string  `json:"return_reason"`
	CatalogueID  float64 `json:"catalogue_id"`
	Category     string  `json:"category"`
	SKU          string  `json:"sku_description"`
	Quantity     float64 `json:"quantity"`
}

// Table is an ordered, in-memory collection of order records parsed
// from a single upload (or several merged uploads). Present records
// which source columns existed, since absence of a column and absence
// of a value are different things downstream.
type Table struct {
	Rows    []OrderRecord
	Present map[string]bool
}

// Has reports whether the source data carried the named column.
// A nil table has no columns, which lets engines degrade uniformly.
func (t *Table) Has(col string) bool {
	return t != nil && t.Present[col]
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Merge concatenates tables row-preserving. The column set is the
// union of the inputs' columns; rows from a table that lacked a column
// already carry NaN/empty for it.
func Merge(tables ...*Table) *Table {
	merged := &Table{Present: make(map[string]bool)}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for col := range t.Present {
			if t.Present[col] {
				merged.Present[col] = true
			}
		}
		merged.Rows = append(merged.Rows, t.Rows...)
	}
	return merged
}

// Missing is the sentinel for absent numeric cells.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether a numeric cell was absent or unparseable.
func IsMissing(v float64) bool { return math.IsNaN(v) }
