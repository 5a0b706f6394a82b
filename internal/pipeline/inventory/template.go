package inventory

import "github.com/andresuchdata/outlet-insight/internal/workbook"

// TemplateHeaders returns the raw header row of each required sheet in the
// order a new workbook lays them out.
func TemplateHeaders() map[string][]string {
	outlet := []string{"Número de artículo", "Descripción del artículo"}
	outlet = append(outlet, Months[:]...)
	outlet = append(outlet, "Total anual", "Stock al 1 de oct")

	return map[string][]string{
		SheetInventory: {"Codigo", "Descripcion", "Stock", "Precio Sala", "Outlet"},
		SheetOutlet:    outlet,
	}
}

// Template renders an XLSX workbook holding only the header rows.
func Template() ([]byte, error) {
	sheets := make(map[string][][]any, len(RequiredSheets))
	for name, headers := range TemplateHeaders() {
		row := make([]any, len(headers))
		for i, h := range headers {
			row[i] = h
		}
		sheets[name] = [][]any{row}
	}
	return workbook.Build(sheets, RequiredSheets...)
}
