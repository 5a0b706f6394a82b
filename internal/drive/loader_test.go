package drive

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/andresuchdata/outlet-insight/internal/pipeline"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeDrive struct {
	files   []*File
	content map[string]string
	listErr error
	fetched []string
}

func (d *fakeDrive) ListFiles(ctx context.Context, folderID string) ([]*File, error) {
	return d.files, d.listErr
}

func (d *fakeDrive) DownloadFile(ctx context.Context, f *File, w io.Writer) error {
	d.fetched = append(d.fetched, f.ID)
	c, ok := d.content[f.ID]
	if !ok {
		return errors.New("404")
	}
	_, err := io.WriteString(w, c)
	return err
}

func TestLoader(t *testing.T) {
	Convey("Given a Drive folder with mixed files", t, func() {
		d := &fakeDrive{
			files: []*File{
				{ID: "3", Name: "zeta.xlsx", MimeType: mimeXLSX},
				{ID: "1", Name: "Tienda Centro", MimeType: mimeGoogleSheet},
				{ID: "2", Name: "notes.pdf", MimeType: "application/pdf"},
				{ID: "4", Name: "archive", MimeType: mimeFolder},
				{ID: "5", Name: "alfa.XLSX", MimeType: "application/octet-stream"},
			},
			content: map[string]string{"1": "sheet", "3": "zeta", "5": "alfa"},
		}

		Convey("Workbooks are loaded by name and the rest skipped", func() {
			sources, err := Loader{Files: d, FolderID: "folder"}.Load(context.Background())
			So(err, ShouldBeNil)
			So(sources, ShouldResemble, []pipeline.Source{
				{Name: "Tienda Centro.xlsx", Data: []byte("sheet")},
				{Name: "alfa.XLSX", Data: []byte("alfa")},
				{Name: "zeta.xlsx", Data: []byte("zeta")},
			})
			So(d.fetched, ShouldNotContain, "2")
		})

		Convey("A failed download fails the load", func() {
			delete(d.content, "3")
			_, err := Loader{Files: d}.Load(context.Background())
			So(err, ShouldNotBeNil)
		})

		Convey("A cancelled context stops downloading", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := Loader{Files: d}.Load(ctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(d.fetched, ShouldBeEmpty)
		})
	})
}

func TestEscapeQuery(t *testing.T) {
	if got := escapeQuery(`O'Brien`); got != `O\'Brien` {
		t.Errorf("escapeQuery = %q", got)
	}
}
