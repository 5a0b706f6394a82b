package inventory

// coverageDays is the period used to turn units sold into a daily rate.
const coverageDays = 30

// safeDiv returns 0 instead of Inf or NaN.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return finite(num / den)
}

func deriveInventory(r *InventoryRecord) {
	r.TotalSalesOutletPrice = finite(r.OutletPrice * r.UnitsSold)
	r.TotalSalesFloorPrice = finite(r.FloorPrice * r.UnitsSold)
	r.AverageSellingPrice = safeDiv(r.TotalSalesOutletPrice, r.UnitsSold)
	r.DiscountPercentage = finite(safeDiv(r.FloorPrice-r.OutletPrice, r.FloorPrice) * 100)
}

func deriveOutlet(r *OutletRecord) {
	var sold float64
	for _, u := range r.MonthlyUnits {
		sold += u
	}
	r.TotalUnitsSold = finite(sold)
	r.BeginningInventory = finite(r.TotalUnitsSold + r.UnitsInStock)
}

// Snapshot aggregates the metrics record from already derived rows.
//
// StockToSalesRatio pairs outlet and inventory rows by position, not by item
// number, over the rows both tables have.
func Snapshot(inv []InventoryRecord, out []OutletRecord) MetricsSnapshot {
	m := MetricsSnapshot{UnsoldItems: []string{}}

	var (
		aspSum, discSum float64
		unitsSoldSum    float64
		cogs            float64
	)
	for i, r := range inv {
		m.TotalSalesOutlet += r.TotalSalesOutletPrice
		m.TotalSalesFloor += r.TotalSalesFloorPrice
		aspSum += r.AverageSellingPrice
		discSum += r.DiscountPercentage
		unitsSoldSum += r.UnitsSold
		cogs += r.TotalSalesOutletPrice

		if i == 0 || r.UnitsSold > m.BestSeller.Units {
			m.BestSeller = Seller{Description: r.Description, Units: r.UnitsSold}
		}
		if i == 0 || r.UnitsSold < m.WorstSeller.Units {
			m.WorstSeller = Seller{Description: r.Description, Units: r.UnitsSold}
		}
		if r.UnitsSold == 0 {
			m.UnsoldItems = append(m.UnsoldItems, r.Description)
		}
	}

	var stock, stockValue float64
	for i, r := range out {
		m.TotalUnitsSold += r.TotalUnitsSold
		stock += r.UnitsInStock
		if i < len(inv) {
			stockValue += finite(r.UnitsInStock * inv[i].OutletPrice)
		}
	}

	// Sums of finite values can still overflow.
	m.TotalSalesOutlet = finite(m.TotalSalesOutlet)
	m.TotalSalesFloor = finite(m.TotalSalesFloor)
	m.TotalUnitsSold = finite(m.TotalUnitsSold)
	cogs, stock, stockValue = finite(cogs), finite(stock), finite(stockValue)
	unitsSoldSum = finite(unitsSoldSum)

	m.AvgSellingPrice = safeDiv(aspSum, float64(len(inv)))
	m.AvgDiscount = safeDiv(discSum, float64(len(inv)))
	m.InventoryTurnover = safeDiv(cogs, safeDiv(stock, float64(len(out))))
	m.SellThroughRate = finite(safeDiv(m.TotalUnitsSold, m.TotalUnitsSold+stock) * 100)
	m.StockToSalesRatio = safeDiv(stockValue, m.TotalSalesOutlet)
	m.InventoryCoverage = safeDiv(stock, unitsSoldSum/coverageDays)

	return m
}
