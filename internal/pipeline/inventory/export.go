package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the header row and one row per record. Numbers are
// written in their shortest exact form so the file parses back unchanged.
func (t *InventoryTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed writing header: %w", err)
	}
	row := make([]string, len(t.Columns))
	for i := range t.Records {
		r := &t.Records[i]
		for c, col := range t.Columns {
			row[c] = r.cell(col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r *InventoryRecord) cell(col string) string {
	switch col {
	case ColItemNumber:
		return r.ItemNumber
	case ColDescription:
		return r.Description
	case ColUnitsSold:
		return formatNumber(r.UnitsSold)
	case ColFloorPrice:
		return formatNumber(r.FloorPrice)
	case ColOutletPrice:
		return formatNumber(r.OutletPrice)
	case ColTotalSalesOutletPrice:
		return formatNumber(r.TotalSalesOutletPrice)
	case ColTotalSalesFloorPrice:
		return formatNumber(r.TotalSalesFloorPrice)
	case ColAverageSellingPrice:
		return formatNumber(r.AverageSellingPrice)
	case ColDiscountPercentage:
		return formatNumber(r.DiscountPercentage)
	}
	return r.Extra[col]
}

func (r *InventoryRecord) set(col, v string) bool {
	switch col {
	case ColItemNumber:
		r.ItemNumber = v
	case ColDescription:
		r.Description = v
	case ColUnitsSold:
		r.UnitsSold = toNumber(v)
	case ColFloorPrice:
		r.FloorPrice = toNumber(v)
	case ColOutletPrice:
		r.OutletPrice = toNumber(v)
	case ColTotalSalesOutletPrice:
		r.TotalSalesOutletPrice = toNumber(v)
	case ColTotalSalesFloorPrice:
		r.TotalSalesFloorPrice = toNumber(v)
	case ColAverageSellingPrice:
		r.AverageSellingPrice = toNumber(v)
	case ColDiscountPercentage:
		r.DiscountPercentage = toNumber(v)
	default:
		return false
	}
	return true
}

// WriteCSV writes the header row and one row per record.
func (t *OutletTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("failed writing header: %w", err)
	}
	row := make([]string, len(t.Columns))
	for i := range t.Records {
		r := &t.Records[i]
		for c, col := range t.Columns {
			row[c] = r.cell(col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r *OutletRecord) cell(col string) string {
	switch col {
	case ColItemNumber:
		return r.ItemNumber
	case ColDescription:
		return r.Description
	case ColTotalAnnualSales:
		return r.TotalAnnualSales
	case ColUnitsInStock:
		return formatNumber(r.UnitsInStock)
	case ColTotalUnitsSold:
		return formatNumber(r.TotalUnitsSold)
	case ColBeginningInventory:
		return formatNumber(r.BeginningInventory)
	}
	if m := monthIndex(col); m >= 0 {
		return formatNumber(r.MonthlyUnits[m])
	}
	return r.Extra[col]
}

func (r *OutletRecord) set(col, v string) bool {
	switch col {
	case ColItemNumber:
		r.ItemNumber = v
	case ColDescription:
		r.Description = v
	case ColTotalAnnualSales:
		r.TotalAnnualSales = v
	case ColUnitsInStock:
		r.UnitsInStock = toNumber(v)
	case ColTotalUnitsSold:
		r.TotalUnitsSold = toNumber(v)
	case ColBeginningInventory:
		r.BeginningInventory = toNumber(v)
	default:
		m := monthIndex(col)
		if m < 0 {
			return false
		}
		r.MonthlyUnits[m] = toNumber(v)
	}
	return true
}

// ParseInventoryCSV reads a table written by InventoryTable.WriteCSV.
// Derived columns are taken as written, not recomputed.
func ParseInventoryCSV(r io.Reader) (InventoryTable, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return InventoryTable{}, err
	}
	t := InventoryTable{Columns: header, Records: make([]InventoryRecord, len(rows))}
	for i, row := range rows {
		rec := &t.Records[i]
		for c, col := range header {
			if !rec.set(col, row[c]) {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[col] = row[c]
			}
		}
	}
	return t, nil
}

// ParseOutletCSV reads a table written by OutletTable.WriteCSV.
func ParseOutletCSV(r io.Reader) (OutletTable, error) {
	header, rows, err := readCSV(r)
	if err != nil {
		return OutletTable{}, err
	}
	t := OutletTable{Columns: header, Records: make([]OutletRecord, len(rows))}
	for i, row := range rows {
		rec := &t.Records[i]
		for c, col := range header {
			if !rec.set(col, row[c]) {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[col] = row[c]
			}
		}
	}
	return t, nil
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv has no header row")
	}
	return records[0], records[1:], nil
}
