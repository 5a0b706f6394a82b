package inventory

// Required sheet names, matched exactly.
const (
	SheetInventory = "Inventario"
	SheetOutlet    = "Outlet"
)

// RequiredSheets lists the sheets every workbook must contain, in the order
// they are reported when missing.
var RequiredSheets = []string{SheetInventory, SheetOutlet}

// Canonical column names.
const (
	ColItemNumber  = "item_number"
	ColDescription = "description"

	ColUnitsSold   = "units_sold"
	ColFloorPrice  = "floor_price"
	ColOutletPrice = "outlet_price"

	ColTotalSalesOutletPrice = "total_sales_outlet_price"
	ColTotalSalesFloorPrice  = "total_sales_floor_price"
	ColAverageSellingPrice   = "average_selling_price"
	ColDiscountPercentage    = "discount_percentage"

	ColTotalAnnualSales   = "total_annual_sales"
	ColUnitsInStock       = "units_in_stock"
	ColTotalUnitsSold     = "total_units_sold"
	ColBeginningInventory = "beginning_inventory"
)

const monthCount = 9

// Months are the monthly sales columns of the Outlet sheet. They keep their
// source names in the canonical table.
var Months = [monthCount]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo",
	"Junio", "Julio", "Agosto", "Septiembre",
}

// inventoryRenames maps raw Inventario headers to canonical names.
var inventoryRenames = map[string]string{
	"Codigo":      ColItemNumber,
	"Descripcion": ColDescription,
	"Stock":       ColUnitsSold,
	"Precio Sala": ColFloorPrice,
	"Outlet":      ColOutletPrice,
}

// outletRenames maps raw Outlet headers to canonical names.
var outletRenames = map[string]string{
	"Número de artículo":       ColItemNumber,
	"Descripción del artículo": ColDescription,
	"Total anual":              ColTotalAnnualSales,
	"Stock al 1 de oct":        ColUnitsInStock,
}

// Raw headers that must be present for the metrics to be computed.
var (
	inventoryRequired = []string{"Descripcion", "Stock", "Precio Sala", "Outlet"}
	outletRequired    = append([]string{"Stock al 1 de oct"}, Months[:]...)
)

var (
	inventoryDerived = []string{
		ColTotalSalesOutletPrice,
		ColTotalSalesFloorPrice,
		ColAverageSellingPrice,
		ColDiscountPercentage,
	}
	outletDerived = []string{
		ColTotalUnitsSold,
		ColBeginningInventory,
	}
)

// monthIndex returns the position of a month column, or -1.
func monthIndex(name string) int {
	for i, m := range Months {
		if m == name {
			return i
		}
	}
	return -1
}
