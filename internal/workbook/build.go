package workbook

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Build writes sheets into a new XLSX document. Values keep their Go type,
// so numbers land in numeric cells and strings in shared-string cells. The
// default "Sheet1" is removed unless one of the sheets reuses that name.
func Build(sheets map[string][][]any, order ...string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if len(order) == 0 {
		for name := range sheets {
			order = append(order, name)
		}
	}

	keepDefault := false
	for _, name := range order {
		if name == "Sheet1" {
			keepDefault = true
			continue
		}
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}
	if !keepDefault && len(order) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	for _, name := range order {
		for i, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, err
			}
			values := row
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write row %d of %s: %w", i+1, name, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
