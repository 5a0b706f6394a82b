package domain

import (
	"github.com/andresuchdata/outlet-insight/internal/pipeline/inventory"
)

// Card is one labelled value of the dashboard. Detail is an optional
// second line, e.g. the units of a best seller.
type Card struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Detail string `json:"detail,omitempty"`
}

// Section groups related cards under a title
type Section struct {
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

// DashboardView is a metrics snapshot with every value already formatted
// for display.
type DashboardView struct {
	Sales       Section  `json:"sales"`
	Prices      Section  `json:"prices"`
	Inventory   Section  `json:"inventory"`
	Performance Section  `json:"performance"`
	UnsoldItems []string `json:"unsold_items"`
}

// NewDashboardView formats a snapshot.
func NewDashboardView(m inventory.MetricsSnapshot) DashboardView {
	unsold := make([]string, len(m.UnsoldItems))
	copy(unsold, m.UnsoldItems)

	return DashboardView{
		Sales: Section{
			Title: "Sales Metrics",
			Cards: []Card{
				{Label: "Total Sales (Outlet Price)", Value: inventory.FormatCurrency(m.TotalSalesOutlet)},
				{Label: "Total Sales (Floor Price)", Value: inventory.FormatCurrency(m.TotalSalesFloor)},
			},
		},
		Prices: Section{
			Title: "Price Metrics",
			Cards: []Card{
				{Label: "Average Selling Price", Value: inventory.FormatCurrency(m.AvgSellingPrice)},
				{Label: "Average Discount", Value: inventory.FormatPercentage(m.AvgDiscount)},
			},
		},
		Inventory: Section{
			Title: "Inventory Metrics",
			Cards: []Card{
				{Label: "Total Units Sold", Value: inventory.FormatNumber(m.TotalUnitsSold)},
				{Label: "Inventory Turnover", Value: inventory.FormatRatio(m.InventoryTurnover)},
				{Label: "Sell-Through Rate", Value: inventory.FormatPercentage(m.SellThroughRate)},
				{Label: "Stock-to-Sales Ratio", Value: inventory.FormatRatio(m.StockToSalesRatio)},
				{Label: "Inventory Coverage (days)", Value: inventory.FormatNumber(m.InventoryCoverage)},
			},
		},
		Performance: Section{
			Title: "Product Performance",
			Cards: []Card{
				{
					Label:  "Best Selling Product",
					Value:  m.BestSeller.Description,
					Detail: "Units Sold: " + inventory.FormatNumber(m.BestSeller.Units),
				},
				{
					Label:  "Least Selling Product",
					Value:  m.WorstSeller.Description,
					Detail: "Units Sold: " + inventory.FormatNumber(m.WorstSeller.Units),
				},
			},
		},
		UnsoldItems: unsold,
	}
}
