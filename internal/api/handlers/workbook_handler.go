package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/andresuchdata/outlet-insight/internal/api/middleware"
	"github.com/andresuchdata/outlet-insight/internal/pipeline"
	"github.com/andresuchdata/outlet-insight/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type WorkbookHandler struct {
	service *service.AnalysisService
}

func NewWorkbookHandler(service *service.AnalysisService) *WorkbookHandler {
	return &WorkbookHandler{service: service}
}

// Validate checks the sheets of the uploaded "file". An invalid workbook is
// a successful validation and answers 200 with valid=false.
func (h *WorkbookHandler) Validate(c *gin.Context) {
	src, ok := h.singleSource(c)
	if !ok {
		return
	}

	report, err := h.service.Validate(c.Request.Context(), src)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Analyze processes the uploaded "file" and returns tables, metrics and
// the formatted dashboard.
func (h *WorkbookHandler) Analyze(c *gin.Context) {
	src, ok := h.singleSource(c)
	if !ok {
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), src)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// Compare processes every uploaded "files" part. Per-file failures are part
// of the response body, not the status.
func (h *WorkbookHandler) Compare(c *gin.Context) {
	form, ok := h.form(c)
	if !ok {
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	sources := make([]pipeline.Source, 0, len(headers))
	for _, fh := range headers {
		src, err := readSource(fh)
		if err != nil {
			log.Error().Err(err).Str("filename", fh.Filename).Msg("failed to read uploaded file")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sources = append(sources, src)
	}

	cmp, err := h.service.Compare(c.Request.Context(), sources)
	if err != nil {
		errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// Export processes the uploaded "file" and returns one canonical table as
// a CSV attachment. ?table= selects inventory (default) or outlet.
func (h *WorkbookHandler) Export(c *gin.Context) {
	table := c.DefaultQuery("table", "inventory")
	if table != "inventory" && table != "outlet" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown table %q", table)})
		return
	}

	src, ok := h.singleSource(c)
	if !ok {
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), src)
	if err != nil {
		errorResponse(c, err)
		return
	}

	var buf bytes.Buffer
	if table == "inventory" {
		err = analysis.Inventory.WriteCSV(&buf)
	} else {
		err = analysis.Outlet.WriteCSV(&buf)
	}
	if err != nil {
		errorResponse(c, err)
		return
	}

	name := pipeline.ExportFileName(src.Name, table)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *WorkbookHandler) form(c *gin.Context) (*multipart.Form, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return nil, false
	}
	return form, true
}

func (h *WorkbookHandler) singleSource(c *gin.Context) (pipeline.Source, bool) {
	form, ok := h.form(c)
	if !ok {
		return pipeline.Source{}, false
	}

	headers := form.File["file"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return pipeline.Source{}, false
	}

	src, err := readSource(headers[0])
	if err != nil {
		log.Error().Err(err).Str("filename", headers[0].Filename).Msg("failed to read uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pipeline.Source{}, false
	}
	return src, true
}

func readSource(fh *multipart.FileHeader) (pipeline.Source, error) {
	f, err := fh.Open()
	if err != nil {
		return pipeline.Source{}, fmt.Errorf("cannot open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return pipeline.Source{}, fmt.Errorf("cannot read upload %s: %w", fh.Filename, err)
	}
	return pipeline.Source{Name: fh.Filename, Data: data}, nil
}

// errorResponse maps domain failures to 422 with their kind and anything
// else to 500.
func errorResponse(c *gin.Context, err error) {
	kind := pipeline.ErrorKind(err)
	if kind == pipeline.KindInternal {
		log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "kind": kind})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": kind})
}
