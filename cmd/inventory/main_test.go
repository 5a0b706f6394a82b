package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/andresuchdata/outlet-insight/internal/workbook"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/urfave/cli/v2"
)

func run(args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"inventory", "--log-level", "error"}, args...))
	return out.String(), err
}

func exitCode(err error) int {
	if ec, ok := err.(cli.ExitCoder); ok {
		return ec.ExitCode()
	}
	return -1
}

func writeWorkbook(dir, name string, sheets map[string][][]any, order ...string) string {
	data, err := workbook.Build(sheets, order...)
	So(err, ShouldBeNil)
	path := filepath.Join(dir, name)
	So(os.WriteFile(path, data, 0o644), ShouldBeNil)
	return path
}

func sampleSheets() map[string][][]any {
	return map[string][][]any{
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
	}
}

func TestCommands(t *testing.T) {
	Convey("Given a directory of workbooks", t, func() {
		dir := t.TempDir()
		good := writeWorkbook(dir, "tienda.xlsx", sampleSheets(), "Inventario", "Outlet")
		bad := writeWorkbook(dir, "notas.xlsx", map[string][][]any{"Hoja": {{"x"}}}, "Hoja")

		Convey("validate reports each file and fails when one is invalid", func() {
			out, err := run("validate", good, bad)
			So(exitCode(err), ShouldEqual, 1)
			So(out, ShouldContainSubstring, "tienda.xlsx: ok")
			So(out, ShouldContainSubstring, "notas.xlsx: missing required sheets: Inventario, Outlet (missing_tables)")
		})

		Convey("analyze prints the formatted dashboard", func() {
			out, err := run("analyze", good)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Sales Metrics")
			So(out, ShouldContainSubstring, "$50.00")
			So(out, ShouldContainSubstring, "Mesa")
		})

		Convey("analyze --json emits the analysis", func() {
			out, err := run("analyze", "--json", good)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, `"total_sales_outlet": 50`)
		})

		Convey("analyze wants exactly one file", func() {
			_, err := run("analyze", good, good)
			So(exitCode(err), ShouldEqual, 2)
		})

		Convey("compare lists failures next to metrics", func() {
			out, err := run("compare", "--workers", "2", good, bad)
			So(exitCode(err), ShouldEqual, 1)
			So(out, ShouldContainSubstring, "missing_tables")
			So(out, ShouldContainSubstring, "Silla")
		})

		Convey("export writes both tables of valid files", func() {
			outDir := filepath.Join(dir, "out")
			_, err := run("export", "--out", outDir, good)
			So(err, ShouldBeNil)
			_, err = os.Stat(filepath.Join(outDir, "tienda_inventory_data.csv"))
			So(err, ShouldBeNil)
			_, err = os.Stat(filepath.Join(outDir, "tienda_outlet_data.csv"))
			So(err, ShouldBeNil)
		})

		Convey("sheet dumps raw cells as CSV", func() {
			out, err := run("sheet", good, "Inventario")
			So(err, ShouldBeNil)
			So(out, ShouldStartWith, "Codigo,Descripcion,Stock,Precio Sala,Outlet\nA1,Silla,5,20,10\n")
		})

		Convey("template writes a workbook that passes validation", func() {
			path := filepath.Join(dir, "plantilla.xlsx")
			_, err := run("template", "--out", path)
			So(err, ShouldBeNil)

			out, err := run("validate", path)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "plantilla.xlsx: ok")
		})

		Convey("cache clear refuses to run with caching disabled", func() {
			_, err := run("cache", "clear")
			So(exitCode(err), ShouldEqual, 2)
		})

		Convey("remote rejects unknown sources", func() {
			_, err := run("remote", "--from", "ftp")
			So(exitCode(err), ShouldEqual, 2)
		})
	})
}
