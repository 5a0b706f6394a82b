package domain

import (
	"github.com/andresuchdata/outlet-insight/internal/pipeline/inventory"
)

// ValidationReport is the outcome of checking a workbook's sheets.
type ValidationReport struct {
	File    string   `json:"file"`
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing,omitempty"`
	Error   string   `json:"error,omitempty"`
	Kind    string   `json:"kind,omitempty"`
}

// Analysis is one processed workbook with its rendered dashboard.
type Analysis struct {
	RunID     string                    `json:"run_id"`
	File      string                    `json:"file"`
	Inventory inventory.InventoryTable  `json:"inventory"`
	Outlet    inventory.OutletTable     `json:"outlet"`
	Metrics   inventory.MetricsSnapshot `json:"metrics"`
	Dashboard DashboardView             `json:"dashboard"`
}

// NewAnalysis wraps a result for presentation.
func NewAnalysis(runID, file string, res *inventory.Result) *Analysis {
	return &Analysis{
		RunID:     runID,
		File:      file,
		Inventory: res.Inventory,
		Outlet:    res.Outlet,
		Metrics:   res.Metrics,
		Dashboard: NewDashboardView(res.Metrics),
	}
}

// Comparison is a side-by-side view of several workbooks of one run.
type Comparison struct {
	RunID string          `json:"run_id"`
	Files []ComparisonRow `json:"files"`
}

// ComparisonRow carries either metrics or an error for one file.
type ComparisonRow struct {
	File      string                     `json:"file"`
	Status    string                     `json:"status"`
	Error     string                     `json:"error,omitempty"`
	Kind      string                     `json:"kind,omitempty"`
	Metrics   *inventory.MetricsSnapshot `json:"metrics,omitempty"`
	Dashboard *DashboardView             `json:"dashboard,omitempty"`
}

// Failed counts the rows that carry an error.
func (c *Comparison) Failed() int {
	n := 0
	for _, r := range c.Files {
		if r.Error != "" {
			n++
		}
	}
	return n
}
