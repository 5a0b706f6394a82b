package inventory

import (
	"errors"

	"github.com/andresuchdata/outlet-insight/internal/workbook"
)

var (
	inventoryHeader = []string{"Codigo", "Descripcion", "Stock", "Precio Sala", "Outlet"}
	outletHeader    = append([]string{"Número de artículo", "Descripción del artículo", "Total anual", "Stock al 1 de oct"}, Months[:]...)
)

func inventorySheet(rows ...[]string) workbook.Sheet {
	return workbook.Sheet{Name: SheetInventory, Rows: append([][]string{inventoryHeader}, rows...)}
}

func outletSheet(rows ...[]string) workbook.Sheet {
	return workbook.Sheet{Name: SheetOutlet, Rows: append([][]string{outletHeader}, rows...)}
}

// outletRow builds an Outlet row; months not given are left blank.
func outletRow(code, desc, annual, stock string, months ...string) []string {
	row := []string{code, desc, annual, stock}
	return append(row, months...)
}

func book(sheets ...workbook.Sheet) *workbook.Static {
	return &workbook.Static{Sheets: sheets}
}

// sampleBook is the workbook the metric assertions are computed from.
//
//	A: 5 sold, floor 20, outlet 10   stock 4, months 10+20
//	B: 0 sold, floor 40, outlet 30   stock 6, Septiembre 5
//	C: 10 sold, floor 0, outlet 5
func sampleBook() *workbook.Static {
	return book(
		inventorySheet(
			[]string{"A1", "Silla", "5", "20", "10"},
			[]string{"B2", "Mesa", "0", "40", "30"},
			[]string{"C3", "Lampara", "10", "0", "5"},
		),
		outletSheet(
			outletRow("A1", "Silla", "30", "4", "10", "20"),
			outletRow("B2", "Mesa", "5", "6", "0", "0", "0", "0", "0", "0", "0", "0", "5"),
		),
	)
}

// brokenBook lists both sheets but cannot read them.
type brokenBook struct{}

func (brokenBook) SheetNames() []string { return []string{SheetInventory, SheetOutlet} }

func (brokenBook) Rows(string) ([][]string, error) { return nil, errors.New("corrupt sheet xml") }
