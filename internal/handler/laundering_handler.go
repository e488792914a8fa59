package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portos/internal/domain"
	"portos/internal/service"
	"portos/internal/xlsx"
)

// LaunderingHandler handles laundering ledger endpoints.
type LaunderingHandler struct {
	launderingService service.LaunderingService
}

// NewLaunderingHandler creates a new LaunderingHandler.
func NewLaunderingHandler(launderingService service.LaunderingService) *LaunderingHandler {
	return &LaunderingHandler{launderingService: launderingService}
}

// Settings handles GET /api/v1/laundering/settings
func (h *LaunderingHandler) Settings(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	setting, err := h.launderingService.Settings(c.Request.Context(), enterpriseID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, setting)
}

type settingsInput struct {
	EnterpriseID   *uuid.UUID `json:"enterprise_id"`
	IsEnabled      bool       `json:"is_enabled"`
	UseGlobal      bool       `json:"use_global"`
	PercEnterprise float64    `json:"perc_entreprise"`
	PercGroup      float64    `json:"perc_groupe"`
}

// UpdateSettings handles PUT /api/v1/laundering/settings
func (h *LaunderingHandler) UpdateSettings(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input settingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	// Absent enterprise id targets the global scope.
	target := uuid.Nil
	if input.EnterpriseID != nil {
		target = *input.EnterpriseID
	}

	setting, err := h.launderingService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		EnterpriseID:   target,
		Role:           role,
		IsEnabled:      input.IsEnabled,
		UseGlobal:      input.UseGlobal,
		PercEnterprise: input.PercEnterprise,
		PercGroup:      input.PercGroup,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, setting)
}

type launderingRowInput struct {
	Status       string     `json:"status"`
	DateReceived *time.Time `json:"date_recu"`
	DateReturned *time.Time `json:"date_rendu"`
	Group        string     `json:"groupe"`
	Employee     string     `json:"employe"`
	GiverID      string     `json:"donneur_id"`
	ReceiverID   string     `json:"recepteur_id"`
	Amount       float64    `json:"somme"`
}

func (in *launderingRowInput) toService(enterpriseID, userID uuid.UUID, role domain.Role) *service.LaunderingRowInput {
	return &service.LaunderingRowInput{
		EnterpriseID: enterpriseID,
		CreatedBy:    userID,
		Role:         role,
		Status:       domain.LaunderingStatus(in.Status),
		DateReceived: in.DateReceived,
		DateReturned: in.DateReturned,
		Group:        in.Group,
		Employee:     in.Employee,
		GiverID:      in.GiverID,
		ReceiverID:   in.ReceiverID,
		Amount:       in.Amount,
	}
}

// CreateRow handles POST /api/v1/laundering/rows
func (h *LaunderingHandler) CreateRow(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input launderingRowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	row, err := h.launderingService.CreateRow(c.Request.Context(), input.toService(enterpriseID, userID, role))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, row)
}

// ListRows handles GET /api/v1/laundering/rows
func (h *LaunderingHandler) ListRows(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	rows, total, err := h.launderingService.ListRows(c.Request.Context(), enterpriseID, role, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, rows, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UpdateRow handles PUT /api/v1/laundering/rows/:id
func (h *LaunderingHandler) UpdateRow(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	rowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid row id")
		return
	}

	var input launderingRowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	row, err := h.launderingService.UpdateRow(c.Request.Context(), input.toService(enterpriseID, userID, role), rowID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, row)
}

// DeleteRow handles DELETE /api/v1/laundering/rows/:id
func (h *LaunderingHandler) DeleteRow(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	rowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid row id")
		return
	}

	if err := h.launderingService.DeleteRow(c.Request.Context(), enterpriseID, rowID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// ImportRows handles POST /api/v1/laundering/rows/import
func (h *LaunderingHandler) ImportRows(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input pasteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.launderingService.ImportRows(c.Request.Context(), enterpriseID, userID, role, input.PastedText)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ImportWorkbook handles POST /api/v1/laundering/rows/import/xlsx. The
// workbook is flattened into a delimited block and runs through the same
// pipeline as a pasted import.
func (h *LaunderingHandler) ImportWorkbook(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
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

	block, err := xlsx.ReadLedgerBlock(file)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.launderingService.ImportRows(c.Request.Context(), enterpriseID, userID, role, block)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ExportXLSX handles GET /api/v1/laundering/export/xlsx
func (h *LaunderingHandler) ExportXLSX(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	// Export the whole ledger, ignoring pagination.
	rows, _, err := h.launderingService.ListRows(c.Request.Context(), enterpriseID, role, 0, 10000)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsx.WriteLaundering(&buf, rows); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("blanchiment-%s.xlsx", enterpriseID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
