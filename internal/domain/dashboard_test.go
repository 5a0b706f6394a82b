package domain

import (
	"testing"

	"github.com/andresuchdata/outlet-insight/internal/pipeline/inventory"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewDashboardView(t *testing.T) {
	Convey("Given a metrics snapshot", t, func() {
		m := inventory.MetricsSnapshot{
			TotalSalesOutlet:  1234.5,
			TotalSalesFloor:   2000,
			TotalUnitsSold:    1500,
			AvgSellingPrice:   9.999,
			AvgDiscount:       25,
			InventoryTurnover: 20,
			SellThroughRate:   77.7777,
			StockToSalesRatio: 2.2,
			InventoryCoverage: 20.4,
			BestSeller:        inventory.Seller{Description: "Lampara", Units: 10},
			WorstSeller:       inventory.Seller{Description: "Mesa", Units: 0},
			UnsoldItems:       []string{"Mesa"},
		}
		v := NewDashboardView(m)

		Convey("Values are formatted per card", func() {
			So(v.Sales.Cards[0].Value, ShouldEqual, "$1,234.50")
			So(v.Sales.Cards[1].Value, ShouldEqual, "$2,000.00")
			So(v.Prices.Cards[0].Value, ShouldEqual, "$10.00")
			So(v.Prices.Cards[1].Value, ShouldEqual, "25.0%")
			So(v.Inventory.Cards[0].Value, ShouldEqual, "1,500")
			So(v.Inventory.Cards[2].Value, ShouldEqual, "77.8%")
			So(v.Inventory.Cards[3].Value, ShouldEqual, "2.20")
			So(v.Inventory.Cards[4].Value, ShouldEqual, "20")
		})

		Convey("Sellers carry their units", func() {
			So(v.Performance.Cards[0].Value, ShouldEqual, "Lampara")
			So(v.Performance.Cards[0].Detail, ShouldEqual, "Units Sold: 10")
			So(v.Performance.Cards[1].Detail, ShouldEqual, "Units Sold: 0")
		})

		Convey("The unsold list is a copy", func() {
			v.UnsoldItems[0] = "changed"
			So(m.UnsoldItems[0], ShouldEqual, "Mesa")
		})
	})
}
