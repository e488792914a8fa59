package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portos/internal/service"
)

// TaxHandler handles tax module endpoints.
type TaxHandler struct {
	taxService service.TaxService
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(taxService service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// Compute handles POST /api/v1/tax/compute
func (h *TaxHandler) Compute(c *gin.Context) {
	_, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.TaxComputeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.taxService.Compute(c.Request.Context(), role, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

type declarationInput struct {
	Period  string                  `json:"period"`
	Notes   string                  `json:"notes"`
	Figures service.TaxComputeInput `json:"figures"`
}

// Create handles POST /api/v1/tax/declarations
func (h *TaxHandler) Create(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input declarationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	decl, err := h.taxService.CreateDeclaration(c.Request.Context(), &service.CreateDeclarationInput{
		EnterpriseID: enterpriseID,
		UserID:       userID,
		Role:         role,
		Period:       input.Period,
		Notes:        input.Notes,
		Figures:      input.Figures,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, decl)
}

// List handles GET /api/v1/tax/declarations
func (h *TaxHandler) List(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	decls, total, err := h.taxService.ListDeclarations(c.Request.Context(), enterpriseID, role, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, decls, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/tax/declarations/:id
func (h *TaxHandler) Get(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	declID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid declaration id")
		return
	}

	decl, err := h.taxService.GetDeclaration(c.Request.Context(), enterpriseID, declID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, decl)
}

// Update handles PUT /api/v1/tax/declarations/:id
func (h *TaxHandler) Update(c *gin.Context) {
	enterpriseID, userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	declID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid declaration id")
		return
	}

	var input declarationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	decl, err := h.taxService.UpdateDeclaration(c.Request.Context(), &service.CreateDeclarationInput{
		EnterpriseID: enterpriseID,
		UserID:       userID,
		Role:         role,
		Period:       input.Period,
		Notes:        input.Notes,
		Figures:      input.Figures,
	}, declID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, decl)
}

// Delete handles DELETE /api/v1/tax/declarations/:id
func (h *TaxHandler) Delete(c *gin.Context) {
	enterpriseID, _, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	declID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid declaration id")
		return
	}

	if err := h.taxService.DeleteDeclaration(c.Request.Context(), enterpriseID, declID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
