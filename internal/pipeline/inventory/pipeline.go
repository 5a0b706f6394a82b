package inventory

import (
	"context"

	"github.com/andresuchdata/outlet-insight/internal/pipeline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Process validates the workbook and builds both canonical tables and the
// metrics snapshot. It returns either a complete Result or an error.
func Process(wb Workbook) (*Result, error) {
	if err := Validate(wb); err != nil {
		return nil, err
	}

	invRaw, err := wb.Rows(SheetInventory)
	if err != nil {
		return nil, &UnreadableWorkbookError{Cause: err}
	}
	outRaw, err := wb.Rows(SheetOutlet)
	if err != nil {
		return nil, &UnreadableWorkbookError{Cause: err}
	}

	invSheet := parseSheet(invRaw)
	outSheet := parseSheet(outRaw)

	if len(invSheet.rows) == 0 {
		return nil, &EmptyTableError{Table: SheetInventory}
	}
	if len(outSheet.rows) == 0 {
		return nil, &EmptyTableError{Table: SheetOutlet}
	}
	if missing := invSheet.missing(inventoryRequired); len(missing) > 0 {
		return nil, &MissingColumnsError{Table: SheetInventory, Columns: missing}
	}
	if missing := outSheet.missing(outletRequired); len(missing) > 0 {
		return nil, &MissingColumnsError{Table: SheetOutlet, Columns: missing}
	}

	inv := buildInventory(invSheet)
	out := buildOutlet(outSheet)

	return &Result{
		Inventory: inv,
		Outlet:    out,
		Metrics:   Snapshot(inv.Records, out.Records),
	}, nil
}

func buildInventory(t sheetTable) InventoryTable {
	var (
		codes  = t.text("Codigo")
		descs  = t.text("Descripcion")
		sold   = t.numeric("Stock")
		floor  = t.numeric("Precio Sala")
		outlet = t.numeric("Outlet")
		extra  = t.extras(func(h string) bool { _, ok := inventoryRenames[h]; return ok })
	)

	records := make([]InventoryRecord, len(t.rows))
	for i := range records {
		r := &records[i]
		r.ItemNumber = codes[i]
		r.Description = descs[i]
		r.UnitsSold = sold[i]
		r.FloorPrice = floor[i]
		r.OutletPrice = outlet[i]
		r.Extra = extra[i]
		deriveInventory(r)
	}
	return InventoryTable{
		Columns: t.columns(inventoryRenames, inventoryDerived),
		Records: records,
	}
}

func buildOutlet(t sheetTable) OutletTable {
	var (
		codes  = t.text("Número de artículo")
		descs  = t.text("Descripción del artículo")
		annual = t.text("Total anual")
		stock  = t.numeric("Stock al 1 de oct")
		extra  = t.extras(func(h string) bool {
			_, ok := outletRenames[h]
			return ok || monthIndex(h) >= 0
		})
	)
	var months [monthCount][]float64
	for m, name := range Months {
		months[m] = t.numeric(name)
	}

	records := make([]OutletRecord, len(t.rows))
	for i := range records {
		r := &records[i]
		r.ItemNumber = codes[i]
		r.Description = descs[i]
		r.TotalAnnualSales = annual[i]
		r.UnitsInStock = stock[i]
		for m := range months {
			r.MonthlyUnits[m] = months[m][i]
		}
		r.Extra = extra[i]
		deriveOutlet(r)
	}
	return OutletTable{
		Columns: t.columns(outletRenames, outletDerived),
		Records: records,
	}
}

// TableName is the export name of the table.
func (t *InventoryTable) TableName() string { return "inventory" }

// Len is the number of records.
func (t *InventoryTable) Len() int { return len(t.Records) }

// TableName is the export name of the table.
func (t *OutletTable) TableName() string { return "outlet" }

// Len is the number of records.
func (t *OutletTable) Len() int { return len(t.Records) }

// Tables returns both canonical tables in export order.
func (r *Result) Tables() []pipeline.Table {
	return []pipeline.Table{&r.Inventory, &r.Outlet}
}

// Pipeline runs uploaded workbooks through Process. It implements
// pipeline.Pipeline.
type Pipeline struct {
	log zerolog.Logger
}

// NewPipeline creates a new inventory pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{log: log.With().Str("pipeline", "inventory").Logger()}
}

// Name returns the unique identifier of this pipeline.
func (p *Pipeline) Name() string {
	return "inventory"
}

// Validate checks only the sheet names of the source.
func (p *Pipeline) Validate(ctx context.Context, src pipeline.Source) error {
	wb, err := Open(src.Data)
	if err != nil {
		return err
	}
	defer wb.Close()
	return Validate(wb)
}

// Transform opens and processes a single source.
func (p *Pipeline) Transform(ctx context.Context, src pipeline.Source) (pipeline.Output, error) {
	res, err := p.Analyze(ctx, src)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Analyze is Transform with the concrete result type.
func (p *Pipeline) Analyze(ctx context.Context, src pipeline.Source) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wb, err := Open(src.Data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	res, err := Process(wb)
	if err != nil {
		return nil, err
	}
	p.log.Debug().
		Str("file", src.Name).
		Int("inventory_rows", len(res.Inventory.Records)).
		Int("outlet_rows", len(res.Outlet.Records)).
		Msg("workbook processed")
	return res, nil
}
