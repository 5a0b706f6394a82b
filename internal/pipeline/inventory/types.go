package inventory

// InventoryRecord is one product row of the "Inventario" sheet after
// renaming, numeric coercion and derivation.
type InventoryRecord struct {
	ItemNumber  string  `json:"item_number"`
	Description string  `json:"description"`
	UnitsSold   float64 `json:"units_sold"`   // raw "Stock" column
	FloorPrice  float64 `json:"floor_price"`  // raw "Precio Sala"
	OutletPrice float64 `json:"outlet_price"` // raw "Outlet"

	// Derived
	TotalSalesOutletPrice float64 `json:"total_sales_outlet_price"`
	TotalSalesFloorPrice  float64 `json:"total_sales_floor_price"`
	AverageSellingPrice   float64 `json:"average_selling_price"`
	DiscountPercentage    float64 `json:"discount_percentage"`

	// Extra holds columns the mapping does not know, keyed by header.
	Extra map[string]string `json:"extra,omitempty"`
}

// OutletRecord is one product row of the "Outlet" sheet.
type OutletRecord struct {
	ItemNumber       string              `json:"item_number"`
	Description      string              `json:"description"`
	TotalAnnualSales string              `json:"total_annual_sales"` // passthrough, not used by metrics
	UnitsInStock     float64             `json:"units_in_stock"`
	MonthlyUnits     [monthCount]float64 `json:"monthly_units"` // Enero..Septiembre

	// Derived
	TotalUnitsSold     float64 `json:"total_units_sold"`
	BeginningInventory float64 `json:"beginning_inventory"`

	Extra map[string]string `json:"extra,omitempty"`
}

// InventoryTable is the canonical inventory table. Columns is the export
// header order: source order with known headers renamed, then the derived
// columns.
type InventoryTable struct {
	Columns []string          `json:"columns"`
	Records []InventoryRecord `json:"records"`
}

// OutletTable is the canonical outlet table.
type OutletTable struct {
	Columns []string       `json:"columns"`
	Records []OutletRecord `json:"records"`
}

// Seller identifies a product by description and its units sold.
type Seller struct {
	Description string  `json:"description"`
	Units       float64 `json:"units"`
}

// MetricsSnapshot is the fixed metrics record computed once per workbook.
type MetricsSnapshot struct {
	TotalSalesOutlet  float64  `json:"total_sales_outlet"`
	TotalSalesFloor   float64  `json:"total_sales_floor"`
	TotalUnitsSold    float64  `json:"total_units_sold"`
	AvgSellingPrice   float64  `json:"avg_selling_price"`
	AvgDiscount       float64  `json:"avg_discount"`
	InventoryTurnover float64  `json:"inventory_turnover"`
	SellThroughRate   float64  `json:"sell_through_rate"`
	StockToSalesRatio float64  `json:"stock_to_sales_ratio"`
	InventoryCoverage float64  `json:"inventory_coverage"`
	BestSeller        Seller   `json:"best_seller"`
	WorstSeller       Seller   `json:"worst_seller"`
	UnsoldItems       []string `json:"unsold_items"`
}

// Result is everything one workbook produces. It is built in a single call
// and never modified afterwards.
type Result struct {
	Inventory InventoryTable  `json:"inventory"`
	Outlet    OutletTable     `json:"outlet"`
	Metrics   MetricsSnapshot `json:"metrics"`
}
