package http

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-service/internal/domain/dto"
	"github.com/guttosm/cargo-service/internal/i18n"
	"github.com/guttosm/cargo-service/internal/transfer"
)

const uploadField = "file"

// ImportItems handles POST /api/import/items requests.
//
// @Summary      Import items
// @Description  Upserts the items of a CSV or XLSX file. Each malformed row is reported with its row number; valid rows are imported.
// @Tags         Import/Export
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV or XLSX item list"
// @Success      200 {object} dto.ImportResponse "Import summary"
// @Failure      400 {object} dto.ErrorResponse "Missing or unreadable file"
// @Router       /api/import/items [post]
func (h *Handler) ImportItems(c *gin.Context) {
	upload, format, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer upload.Close()

	records, rowErrors, err := transfer.ReadItems(upload, format)
	if err != nil {
		NewResponseBuilder(c).Fail(asInvalid("import.items", err))
		return
	}
	res := h.inventory.ImportItems(c.Request.Context(), records, rowErrors)
	c.JSON(http.StatusOK, dto.NewItemsImportResponse(res))
}

// ImportContainers handles POST /api/import/containers requests.
//
// @Summary      Import containers
// @Description  Creates the containers of a CSV or XLSX file. Re-importing an identical container is accepted.
// @Tags         Import/Export
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV or XLSX container list"
// @Success      200 {object} dto.ImportResponse "Import summary"
// @Failure      400 {object} dto.ErrorResponse "Missing or unreadable file"
// @Router       /api/import/containers [post]
func (h *Handler) ImportContainers(c *gin.Context) {
	upload, format, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer upload.Close()

	records, rowErrors, err := transfer.ReadContainers(upload, format)
	if err != nil {
		NewResponseBuilder(c).Fail(asInvalid("import.containers", err))
		return
	}
	res := h.inventory.ImportContainers(c.Request.Context(), records, rowErrors)
	c.JSON(http.StatusOK, dto.NewContainersImportResponse(res))
}

// openUpload opens the multipart file and detects its format from the file
// name.
func (h *Handler) openUpload(c *gin.Context) (multipart.File, transfer.Format, bool) {
	builder := NewResponseBuilder(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	header, err := c.FormFile(uploadField)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyFileRequired, err)
		return nil, "", false
	}
	format, err := transfer.FormatFromFilename(header.Filename)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyUnsupportedFormat, err)
		return nil, "", false
	}
	f, err := header.Open()
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyFileRequired, err)
		return nil, "", false
	}
	return f, format, true
}

// ExportArrangement handles GET /api/export/arrangement requests.
//
// @Summary      Export the arrangement
// @Description  Writes one row per placed item with its container and corner coordinates.
// @Tags         Import/Export
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format query string false "csv (default) or xlsx"
// @Success      200 {file} file "Arrangement"
// @Failure      400 {object} dto.ErrorResponse "Unsupported format"
// @Router       /api/export/arrangement [get]
func (h *Handler) ExportArrangement(c *gin.Context) {
	builder := NewResponseBuilder(c)

	format, err := transfer.ParseFormat(c.Query("format"))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyUnsupportedFormat, err)
		return
	}
	placements, err := h.placement.Arrangement(c.Request.Context())
	if err != nil {
		builder.Fail(err)
		return
	}

	var buf bytes.Buffer
	if err := transfer.WriteArrangement(&buf, format, placements); err != nil {
		builder.Fail(err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "arrangement."+string(format)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
