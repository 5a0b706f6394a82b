package service

import (
	"context"
	"sync"
	"testing"

	"github.com/andresuchdata/outlet-insight/internal/metrics"
	"github.com/andresuchdata/outlet-insight/internal/pipeline"
	"github.com/andresuchdata/outlet-insight/internal/pipeline/inventory"
	"github.com/andresuchdata/outlet-insight/internal/workbook"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

// memCache is an in-process ResultCache.
type memCache struct {
	mu    sync.Mutex
	items map[string]*inventory.Result
}

func (m *memCache) Get(ctx context.Context, data []byte) (*inventory.Result, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[string(data)]
	return r, ok, nil
}

func (m *memCache) Set(ctx context.Context, data []byte, res *inventory.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[string(data)] = res
	return nil
}

func (m *memCache) Clear(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.items)
	m.items = map[string]*inventory.Result{}
	return n, nil
}

func validWorkbook(t *testing.T) []byte {
	t.Helper()
	data, err := workbook.Build(map[string][][]any{
		"Inventario": {
			{"Codigo", "Descripcion", "Stock", "Precio Sala", "Outlet"},
			{"A1", "Silla", 5, 20, 10},
			{"B2", "Mesa", 0, 40, 30},
		},
		"Outlet": {
			{"Número de artículo", "Descripción del artículo", "Total anual", "Stock al 1 de oct",
				"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre"},
			{"A1", "Silla", 30, 4, 10, 20, 0, 0, 0, 0, 0, 0, 0},
		},
	}, "Inventario", "Outlet")
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	return data
}

func outletOnlyWorkbook(t *testing.T) []byte {
	t.Helper()
	data, err := workbook.Build(map[string][][]any{
		"Outlet": {{"Stock al 1 de oct"}, {1}},
	}, "Outlet")
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	return data
}

func TestAnalysisService(t *testing.T) {
	Convey("Given an analysis service with a cache", t, func() {
		reg := metrics.NewRegistry()
		mc := &memCache{items: map[string]*inventory.Result{}}
		svc := NewAnalysisService(mc, reg, 2)
		ctx := context.Background()
		good := pipeline.Source{Name: "tienda.xlsx", Data: validWorkbook(t)}

		Convey("Analyze returns tables, metrics and dashboard", func() {
			a, err := svc.Analyze(ctx, good)
			So(err, ShouldBeNil)
			So(a.RunID, ShouldNotBeEmpty)
			So(a.File, ShouldEqual, "tienda.xlsx")
			So(a.Metrics.TotalSalesOutlet, ShouldEqual, 50)
			So(a.Dashboard.Sales.Cards[0].Value, ShouldEqual, "$50.00")
			So(a.Metrics.UnsoldItems, ShouldResemble, []string{"Mesa"})
		})

		Convey("The second analysis of the same bytes hits the cache", func() {
			_, err := svc.Analyze(ctx, good)
			So(err, ShouldBeNil)
			_, err = svc.Analyze(ctx, good)
			So(err, ShouldBeNil)
			So(testutil.ToFloat64(reg.CacheLookups.WithLabelValues("miss")), ShouldEqual, 1)
			So(testutil.ToFloat64(reg.CacheLookups.WithLabelValues("hit")), ShouldEqual, 1)
		})

		Convey("Failures are not cached", func() {
			bad := pipeline.Source{Name: "bad.xlsx", Data: outletOnlyWorkbook(t)}
			_, err := svc.Analyze(ctx, bad)
			So(pipeline.ErrorKind(err), ShouldEqual, inventory.KindMissingTables)
			So(mc.items, ShouldBeEmpty)
		})

		Convey("Validate reports missing sheets without an error", func() {
			report, err := svc.Validate(ctx, pipeline.Source{Name: "bad.xlsx", Data: outletOnlyWorkbook(t)})
			So(err, ShouldBeNil)
			So(report.Valid, ShouldBeFalse)
			So(report.Missing, ShouldResemble, []string{"Inventario"})
			So(report.Kind, ShouldEqual, inventory.KindMissingTables)

			report, err = svc.Validate(ctx, good)
			So(err, ShouldBeNil)
			So(report.Valid, ShouldBeTrue)
		})

		Convey("Validate flags unreadable bytes", func() {
			report, err := svc.Validate(ctx, pipeline.Source{Name: "x.xlsx", Data: []byte("nope")})
			So(err, ShouldBeNil)
			So(report.Kind, ShouldEqual, inventory.KindUnreadableWorkbook)
		})

		Convey("Compare keeps going past failing files", func() {
			cmp, err := svc.Compare(ctx, []pipeline.Source{
				good,
				{Name: "broken.xlsx", Data: []byte("nope")},
				{Name: "tienda.xlsx", Data: good.Data},
			})
			So(err, ShouldBeNil)
			So(cmp.Files, ShouldHaveLength, 3)
			So(cmp.Files[0].File, ShouldEqual, "broken.xlsx")
			So(cmp.Files[0].Kind, ShouldEqual, inventory.KindUnreadableWorkbook)
			So(cmp.Files[1].File, ShouldEqual, "tienda.xlsx")
			So(cmp.Files[1].Metrics.TotalSalesOutlet, ShouldEqual, 50)
			So(cmp.Files[2].File, ShouldEqual, "tienda.xlsx#2")
			So(cmp.Failed(), ShouldEqual, 1)
		})
	})

	Convey("Without a cache nothing is looked up", t, func() {
		reg := metrics.NewRegistry()
		svc := NewAnalysisService(nil, reg, 1)
		_, err := svc.Analyze(context.Background(), pipeline.Source{Name: "a.xlsx", Data: validWorkbook(t)})
		So(err, ShouldBeNil)
		So(testutil.ToFloat64(reg.CacheLookups.WithLabelValues("miss")), ShouldEqual, 0)
	})
}
