package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"slotboard/backend/internal/service"
	"slotboard/backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler download endpoints for resolved weeks.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportXLSX downloads the resolved week as a spreadsheet.
// GET /api/v1/timetables/:id/export/xlsx?date=YYYY-MM-DD
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date query parameter is required")
		return
	}

	buf, filename, err := h.exportSvc.ExportWeekXLSX(c.Request.Context(), c.Param("id"), date, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	writeDownload(c, xlsxContentType, filename, buf.Bytes())
}

// ExportICS downloads the resolved week as an iCalendar feed.
// GET /api/v1/timetables/:id/export/ics?date=YYYY-MM-DD
func (h *ExportHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date query parameter is required")
		return
	}

	buf, filename, err := h.exportSvc.ExportWeekICS(c.Request.Context(), c.Param("id"), date, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	writeDownload(c, icsContentType, filename, buf.Bytes())
}

func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 12001, "timetable not found")
	case errors.Is(err, service.ErrNotOwner):
		response.Forbidden(c, 10003, "access denied")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "invalid date, expected YYYY-MM-DD")
	case errors.Is(err, service.ErrExportEmptyWeek):
		response.NotFound(c, 16001, "nothing to export for this week")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
