package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portos/internal/csvexport"
	"portos/internal/service"
	"portos/internal/xlsx"
)

// DotationHandler handles dotation report endpoints.
type DotationHandler struct {
	dotationService service.DotationService
}

// NewDotationHandler creates a new DotationHandler.
func NewDotationHandler(dotationService service.DotationService) *DotationHandler {
	return &DotationHandler{dotationService: dotationService}
}

type createReportInput struct {
	Title      string `json:"title" binding:"required"`
	Period     string `json:"period"`
	Notes      string `json:"notes"`
	PastedText string `json:"pasted_text"`
}

// Create handles POST /api/v1/dotations
func (h *DotationHandler) Create(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input createReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.dotationService.CreateReport(c.Request.Context(), &service.CreateReportInput{
		EnterpriseID: enterpriseID,
		CreatedBy:    userID,
		Role:         role,
		Title:        input.Title,
		Period:       input.Period,
		Notes:        input.Notes,
		PastedText:   input.PastedText,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/dotations
func (h *DotationHandler) List(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	reports, total, err := h.dotationService.ListReports(c.Request.Context(), enterpriseID, role, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, reports, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/dotations/:id
func (h *DotationHandler) Get(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid report id")
		return
	}

	report, rows, err := h.dotationService.GetReport(c.Request.Context(), enterpriseID, reportID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"report": report, "rows": rows})
}

type pasteInput struct {
	PastedText string `json:"pasted_text" binding:"required"`
}

// Preview handles POST /api/v1/dotations/preview
func (h *DotationHandler) Preview(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input pasteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.dotationService.Preview(c.Request.Context(), role, input.PastedText)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ImportRows handles POST /api/v1/dotations/:id/rows/import
func (h *DotationHandler) ImportRows(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid report id")
		return
	}

	var input pasteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.dotationService.ImportRows(c.Request.Context(), &service.ImportRowsInput{
		EnterpriseID: enterpriseID,
		ReportID:     reportID,
		Role:         role,
		PastedText:   input.PastedText,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

type updateRowInput struct {
	EmployeeName string  `json:"employee_name" binding:"required"`
	Grade        string  `json:"grade"`
	Run          float64 `json:"run"`
	Facture      float64 `json:"facture"`
	Vente        float64 `json:"vente"`
}

// UpdateRow handles PUT /api/v1/dotations/:id/rows/:rowId
func (h *DotationHandler) UpdateRow(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid report id")
		return
	}
	rowID, err := uuid.Parse(c.Param("rowId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid row id")
		return
	}

	var input updateRowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	row, err := h.dotationService.UpdateRow(c.Request.Context(), &service.UpdateRowInput{
		EnterpriseID: enterpriseID,
		ReportID:     reportID,
		RowID:        rowID,
		Role:         role,
		EmployeeName: input.EmployeeName,
		Grade:        input.Grade,
		Run:          input.Run,
		Facture:      input.Facture,
		Vente:        input.Vente,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, row)
}

// DeleteRow handles DELETE /api/v1/dotations/:id/rows/:rowId
func (h *DotationHandler) DeleteRow(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid report id")
		return
	}
	rowID, err := uuid.Parse(c.Param("rowId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid row id")
		return
	}

	if err := h.dotationService.DeleteRow(c.Request.Context(), enterpriseID, reportID, rowID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// Delete handles DELETE /api/v1/dotations/:id
func (h *DotationHandler) Delete(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid report id")
		return
	}

	if err := h.dotationService.DeleteReport(c.Request.Context(), enterpriseID, reportID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// ImportWorkbook handles POST /api/v1/dotations/:id/rows/import/xlsx
func (h *DotationHandler) ImportWorkbook(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid report id")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "cannot read file")
		return
	}
	defer file.Close()

	result, err := h.dotationService.ImportWorkbook(c.Request.Context(), enterpriseID, reportID, role, file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ExportCSV handles GET /api/v1/dotations/:id/export/csv
func (h *DotationHandler) ExportCSV(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid report id")
		return
	}

	report, rows, err := h.dotationService.GetReport(c.Request.Context(), enterpriseID, reportID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err == nil {
		err = w.WriteRows(rows)
	}
	if err == nil {
		err = w.WriteTotals(report)
	}
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("dotation-%s.csv", report.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX handles GET /api/v1/dotations/:id/export/xlsx
func (h *DotationHandler) ExportXLSX(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid report id")
		return
	}

	report, rows, err := h.dotationService.GetReport(c.Request.Context(), enterpriseID, reportID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsx.WriteDotation(&buf, report, rows); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("dotation-%s.xlsx", report.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
